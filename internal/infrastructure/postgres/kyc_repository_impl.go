package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
)

type KYCRepository struct {
	db *gorm.DB
}

func NewKYCRepository(db *gorm.DB) *KYCRepository {
	return &KYCRepository{db: db}
}

var _ repo.KYCRepository = (*KYCRepository)(nil)

func (r *KYCRepository) Add(ctx context.Context, k *entity.KYC) error {
	rec := toKYCModel(k)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicateKYC
		}
		return err
	}
	return nil
}

func (r *KYCRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.KYC, error) {
	var rec kycModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainKYC(rec), nil
}

func (r *KYCRepository) Update(ctx context.Context, k *entity.KYC) error {
	return r.db.WithContext(ctx).
		Model(&kycModel{}).
		Where("user_id = ?", k.UserID).
		Updates(map[string]any{
			"legal_name":      k.LegalName,
			"document_type":   k.DocumentType,
			"document_number": k.DocumentNumber,
			"dob":             k.DOB,
			"address":         k.Address,
			"country":         k.Country,
			"status":          string(k.Status),
			"document_url":    k.DocumentURL,
			"updated_at":      k.UpdatedAt,
		}).Error
}

func (r *KYCRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&kycModel{}).Error
}

func (r *KYCRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&kycModel{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
)

// UserRepository is the gorm implementation of repository.UserRepository.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ repo.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Add(ctx context.Context, u *entity.User) error {
	rec := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.take(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, normalizedEmail string) (*entity.User, error) {
	return r.take(ctx, "email = ?", normalizedEmail)
}

func (r *UserRepository) take(ctx context.Context, query string, arg any) (*entity.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainUser(rec)
}

// Update writes every mutable column. Email and created_at are immutable.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	return r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"password_hash": u.PasswordHash,
			"is_active":     u.IsActive,
			"is_verified":   u.IsVerified,
			"first_name":    u.FirstName,
			"last_name":     u.LastName,
			"updated_at":    u.UpdatedAt,
			"last_login":    u.LastLogin,
		}).Error
}

func (r *UserRepository) Patch(ctx context.Context, id uuid.UUID, p repo.UserPatch) error {
	cols := map[string]any{"updated_at": p.UpdatedAt.UTC()}
	if p.FirstName != nil {
		cols["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		cols["last_name"] = *p.LastName
	}
	if p.IsActive != nil {
		cols["is_active"] = *p.IsActive
	}
	if p.IsVerified != nil {
		cols["is_verified"] = *p.IsVerified
	}
	if p.LastLogin != nil {
		cols["last_login"] = p.LastLogin.UTC()
	}
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(cols).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash": hash,
			"updated_at":    time.Now().UTC(),
		}).Error
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, normalizedEmail string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userModel{}).Where("email = ?", normalizedEmail).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&userModel{}).Error
}

func (r *UserRepository) List(ctx context.Context, filter repo.ListFilter) ([]*entity.User, error) {
	q := r.db.WithContext(ctx).Model(&userModel{}).Order("created_at DESC")
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	var rows []userModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(rows))
	for _, row := range rows {
		u, err := toDomainUser(row)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

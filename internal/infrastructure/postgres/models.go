package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
)

type userModel struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Email        string     `gorm:"column:email"`
	PasswordHash string     `gorm:"column:password_hash"`
	IsActive     bool       `gorm:"column:is_active"`
	IsVerified   bool       `gorm:"column:is_verified"`
	FirstName    *string    `gorm:"column:first_name"`
	LastName     *string    `gorm:"column:last_name"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
	LastLogin    *time.Time `gorm:"column:last_login"`
}

func (userModel) TableName() string { return "users" }

type kycModel struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid"`
	LegalName      string    `gorm:"column:legal_name"`
	DocumentType   string    `gorm:"column:document_type"`
	DocumentNumber string    `gorm:"column:document_number"`
	DOB            time.Time `gorm:"column:dob;type:date"`
	Address        string    `gorm:"column:address"`
	Country        string    `gorm:"column:country"`
	Status         string    `gorm:"column:status"`
	DocumentURL    string    `gorm:"column:document_url"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (kycModel) TableName() string { return "user_kyc" }

func toUserModel(u *entity.User) userModel {
	return userModel{
		ID:           u.ID,
		Email:        u.Email.String(),
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		IsVerified:   u.IsVerified,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		LastLogin:    u.LastLogin,
	}
}

func toDomainUser(row userModel) (*entity.User, error) {
	email, err := entity.NewEmail(row.Email)
	if err != nil {
		return nil, err
	}
	return &entity.User{
		ID:           row.ID,
		Email:        email,
		PasswordHash: row.PasswordHash,
		IsActive:     row.IsActive,
		IsVerified:   row.IsVerified,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
		LastLogin:    row.LastLogin,
	}, nil
}

func toKYCModel(k *entity.KYC) kycModel {
	return kycModel{
		ID:             k.ID,
		UserID:         k.UserID,
		LegalName:      k.LegalName,
		DocumentType:   k.DocumentType,
		DocumentNumber: k.DocumentNumber,
		DOB:            k.DOB,
		Address:        k.Address,
		Country:        k.Country,
		Status:         string(k.Status),
		DocumentURL:    k.DocumentURL,
		CreatedAt:      k.CreatedAt,
		UpdatedAt:      k.UpdatedAt,
	}
}

func toDomainKYC(row kycModel) *entity.KYC {
	return &entity.KYC{
		ID:             row.ID,
		UserID:         row.UserID,
		LegalName:      row.LegalName,
		DocumentType:   row.DocumentType,
		DocumentNumber: row.DocumentNumber,
		DOB:            row.DOB,
		Address:        row.Address,
		Country:        row.Country,
		Status:         entity.KYCStatus(row.Status),
		DocumentURL:    row.DocumentURL,
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
	}
}

package handlers

import (
	"time"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
)

type userResponse struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FirstName  *string    `json:"first_name"`
	LastName   *string    `json:"last_name"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:         u.ID.String(),
		Email:      u.Email.String(),
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		LastLogin:  u.LastLogin,
	}
}

type kycResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	LegalName      string    `json:"legal_name"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	DOB            string    `json:"dob"`
	Address        string    `json:"address"`
	Country        string    `json:"country"`
	Status         string    `json:"status"`
	DocumentURL    string    `json:"document_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toKYCResponse(k *entity.KYC) kycResponse {
	return kycResponse{
		ID:             k.ID.String(),
		UserID:         k.UserID.String(),
		LegalName:      k.LegalName,
		DocumentType:   k.DocumentType,
		DocumentNumber: k.DocumentNumber,
		DOB:            k.DOB.Format(dateLayout),
		Address:        k.Address,
		Country:        k.Country,
		Status:         string(k.Status),
		DocumentURL:    k.DocumentURL,
		CreatedAt:      k.CreatedAt,
		UpdatedAt:      k.UpdatedAt,
	}
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type KYCStatus string

const (
	KYCPending  KYCStatus = "pending"
	KYCApproved KYCStatus = "approved"
	KYCRejected KYCStatus = "rejected"
)

func (s KYCStatus) Valid() bool {
	switch s {
	case KYCPending, KYCApproved, KYCRejected:
		return true
	}
	return false
}

// KYC is the identity record attached to a user, at most one per user.
type KYC struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	LegalName      string
	DocumentType   string
	DocumentNumber string
	DOB            time.Time
	Address        string
	Country        string
	Status         KYCStatus
	DocumentURL    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

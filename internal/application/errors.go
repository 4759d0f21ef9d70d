package application

import (
	"errors"

	"github.com/oksasatya/ornakala-backend/pkg/helpers"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrWeakPassword           = errors.New("weak password")
	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account inactive")
	ErrInvalidToken       = helpers.ErrInvalidToken
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrKYCNotFound        = errors.New("kyc not found")
	ErrKYCAlreadyExists   = errors.New("kyc already exists")
	ErrInvalidKYCStatus   = errors.New("invalid kyc status")
)

// Password policy reasons.
const (
	ReasonTooShort          = "too-short"
	ReasonLettersAndNumbers = "must-contain-letters-and-numbers"
)

// PasswordPolicyError reports which strength rule failed. It matches ErrWeakPassword.
type PasswordPolicyError struct {
	Reason string
}

func (e *PasswordPolicyError) Error() string { return "weak password: " + e.Reason }

func (e *PasswordPolicyError) Unwrap() error { return ErrWeakPassword }

// Auth gate reasons, for logs only. Callers see ErrUnauthenticated regardless.
const (
	ReasonInvalidToken = "invalid-token"
	ReasonBadSubject   = "bad-subject"
	ReasonUnknownUser  = "unknown-user"
	ReasonDeactivated  = "deactivated"
	ReasonRevoked      = "revoked"
)

type UnauthenticatedError struct {
	Reason string
}

func (e *UnauthenticatedError) Error() string { return "unauthenticated: " + e.Reason }

func (e *UnauthenticatedError) Unwrap() error { return ErrUnauthenticated }

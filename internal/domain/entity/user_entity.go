package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyPasswordHash = errors.New("password hash must not be empty")

// User is the aggregate root for the account domain.
// PasswordHash always holds a bcrypt digest, never the plaintext.
type User struct {
	ID           uuid.UUID
	Email        Email
	PasswordHash string
	IsActive     bool
	IsVerified   bool
	FirstName    *string
	LastName     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLogin    *time.Time
}

// NewUser builds an active, unverified user with a fresh id.
func NewUser(email Email, passwordHash string, now time.Time) (*User, error) {
	if email.IsZero() {
		return nil, ErrInvalidEmailFormat
	}
	if passwordHash == "" {
		return nil, ErrEmptyPasswordHash
	}
	now = now.UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// touch bumps UpdatedAt, keeping it at or after CreatedAt.
func (u *User) touch(now time.Time) {
	now = now.UTC()
	if now.Before(u.CreatedAt) {
		now = u.CreatedAt
	}
	u.UpdatedAt = now
}

func (u *User) RecordLogin(now time.Time) {
	u.touch(now)
	t := u.UpdatedAt
	u.LastLogin = &t
}

func (u *User) Activate(now time.Time) {
	u.IsActive = true
	u.touch(now)
}

func (u *User) Deactivate(now time.Time) {
	u.IsActive = false
	u.touch(now)
}

func (u *User) MarkVerified(now time.Time) {
	u.IsVerified = true
	u.touch(now)
}

func (u *User) SetPasswordHash(hash string, now time.Time) error {
	if hash == "" {
		return ErrEmptyPasswordHash
	}
	u.PasswordHash = hash
	u.touch(now)
	return nil
}

// UpdateProfile sets the names that are non-nil; nil leaves a field untouched.
func (u *User) UpdateProfile(firstName, lastName *string, now time.Time) {
	if firstName != nil {
		v := strings.TrimSpace(*firstName)
		u.FirstName = &v
	}
	if lastName != nil {
		v := strings.TrimSpace(*lastName)
		u.LastName = &v
	}
	u.touch(now)
}

func (u *User) FullName() string {
	var parts []string
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	return strings.Join(parts, " ")
}

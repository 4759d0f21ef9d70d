package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
)

// ErrDuplicateEmail is returned by Add when the storage layer rejects a second
// user with the same normalized email.
var ErrDuplicateEmail = errors.New("duplicate email")

// ErrDuplicateKYC is returned by KYCRepository.Add when the user already has a record.
var ErrDuplicateKYC = errors.New("duplicate kyc record")

// UserRepository defines the interface for user-related database operations.
// Lookups return (nil, nil) when no row matches. Implementations must be safe
// for concurrent use and treat every method as a single unit of work.
type UserRepository interface {
	Add(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, normalizedEmail string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Patch(ctx context.Context, id uuid.UUID, p UserPatch) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	ExistsByEmail(ctx context.Context, normalizedEmail string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]*entity.User, error)
}

// UserPatch names the columns a narrow write touches; nil fields are left as
// stored. UpdatedAt is always written. Use it instead of Update whenever the
// caller read the row earlier, so concurrent resets or deactivations survive.
type UserPatch struct {
	FirstName  *string
	LastName   *string
	IsActive   *bool
	IsVerified *bool
	LastLogin  *time.Time
	UpdatedAt  time.Time
}

type ListFilter struct {
	Limit    int
	Offset   int
	IsActive *bool
}

// KYCRepository stores the single identity record of each user.
type KYCRepository interface {
	Add(ctx context.Context, k *entity.KYC) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.KYC, error)
	Update(ctx context.Context, k *entity.KYC) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
}

// TokenDenylist remembers revoked token ids until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

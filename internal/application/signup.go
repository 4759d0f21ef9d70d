package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
	"github.com/oksasatya/ornakala-backend/pkg/helpers"
)

// SignupService registers new users.
type SignupService struct {
	Repo   repo.UserRepository
	Hasher *helpers.PasswordHasher
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewSignupService(r repo.UserRepository, hasher *helpers.PasswordHasher, logger *logrus.Logger) *SignupService {
	return &SignupService{Repo: r, Hasher: hasher, Logger: logger, Now: time.Now}
}

// SignupOption adjusts the user before it is persisted.
type SignupOption func(u *entity.User, now time.Time)

// WithNames sets the optional profile names given at signup.
func WithNames(firstName, lastName *string) SignupOption {
	return func(u *entity.User, now time.Time) {
		u.UpdateProfile(firstName, lastName, now)
	}
}

// Register validates the input, enforces email uniqueness and persists a new user.
// Repository errors are returned unchanged; a storage-level duplicate surfaces
// as repository.ErrDuplicateEmail.
func (s *SignupService) Register(ctx context.Context, email, password string, opts ...SignupOption) (*entity.User, error) {
	addr, err := entity.NewEmail(email)
	if err != nil {
		return nil, err
	}
	exists, err := s.Repo.ExistsByEmail(ctx, addr.String())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyRegistered
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return nil, err
	}
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	u, err := entity.NewUser(addr, hash, now)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(u, now)
	}
	if err := s.Repo.Add(ctx, u); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID.String()).Info("user registered")
	}
	return u, nil
}

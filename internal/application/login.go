package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
	"github.com/oksasatya/ornakala-backend/pkg/helpers"
)

type LoginService struct {
	Repo   repo.UserRepository
	Hasher *helpers.PasswordHasher
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewLoginService(r repo.UserRepository, hasher *helpers.PasswordHasher, jwt *helpers.JWTManager, logger *logrus.Logger) *LoginService {
	return &LoginService{Repo: r, Hasher: hasher, JWT: jwt, Logger: logger, Now: time.Now}
}

// Authenticate validates email/password and returns the user without issuing tokens.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *LoginService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil || !s.Hasher.Verify(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInactiveAccount
	}
	return u, nil
}

type AccessToken struct {
	Token     string
	ExpiresAt time.Time
	ExpiresIn time.Duration
}

// CreateAccessToken issues an access-typed token for u with the configured ttl.
func (s *LoginService) CreateAccessToken(u *entity.User) (AccessToken, error) {
	tok, exp, err := s.JWT.IssueAccess(u.ID.String())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID.String()).Error("generate access token failed")
		}
		return AccessToken{}, err
	}
	return AccessToken{Token: tok, ExpiresAt: exp, ExpiresIn: s.JWT.AccessTTL}, nil
}

// RecordLogin stamps last_login. Only the timestamp columns are written, so a
// reset or deactivation committed after Authenticate is kept.
func (s *LoginService) RecordLogin(ctx context.Context, u *entity.User) error {
	u.RecordLogin(s.Now())
	return s.Repo.Patch(ctx, u.ID, repo.UserPatch{LastLogin: u.LastLogin, UpdatedAt: u.UpdatedAt})
}

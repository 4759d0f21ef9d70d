package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
	"github.com/oksasatya/ornakala-backend/pkg/helpers"
)

// PasswordResetService issues reset tokens and applies password resets.
// When Denylist is set a reset token is consumed by a successful reset.
type PasswordResetService struct {
	Repo     repo.UserRepository
	Hasher   *helpers.PasswordHasher
	JWT      *helpers.JWTManager
	Denylist repo.TokenDenylist
	Logger   *logrus.Logger
}

func NewPasswordResetService(r repo.UserRepository, hasher *helpers.PasswordHasher, jwt *helpers.JWTManager, denylist repo.TokenDenylist, logger *logrus.Logger) *PasswordResetService {
	return &PasswordResetService{Repo: r, Hasher: hasher, JWT: jwt, Denylist: denylist, Logger: logger}
}

// GenerateResetToken issues a password_reset token for userID. A zero ttl uses
// the configured default.
func (s *PasswordResetService) GenerateResetToken(userID uuid.UUID, ttl time.Duration) (string, error) {
	tok, _, err := s.JWT.IssueReset(userID.String(), ttl)
	return tok, err
}

// RequestReset returns a reset token for the account behind email, or "" when
// there is none. The token is not delivered anywhere.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) (string, *entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, nil
	}
	tok, err := s.GenerateResetToken(u.ID, 0)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.JWT.Decode(token)
	if err != nil || claims.Type != helpers.TokenTypeReset || claims.Subject == "" {
		return ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ErrInvalidToken
	}
	if s.Denylist != nil {
		revoked, err := s.Denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return err
		}
		if revoked {
			return ErrInvalidToken
		}
	}

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}
	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	if s.Denylist != nil && claims.ExpiresAt != nil {
		if err := s.Denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID.String()).Warn("reset token revoke failed")
		}
	}
	return nil
}

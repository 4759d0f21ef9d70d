package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
	"github.com/oksasatya/ornakala-backend/pkg/helpers"
)

// AuthGate resolves a bearer token to a live, active user.
type AuthGate struct {
	Repo     repo.UserRepository
	JWT      *helpers.JWTManager
	Denylist repo.TokenDenylist
	Logger   *logrus.Logger
}

func NewAuthGate(r repo.UserRepository, jwt *helpers.JWTManager, denylist repo.TokenDenylist, logger *logrus.Logger) *AuthGate {
	return &AuthGate{Repo: r, JWT: jwt, Denylist: denylist, Logger: logger}
}

func (g *AuthGate) deny(reason string) error {
	if g.Logger != nil {
		g.Logger.WithField("reason", reason).Debug("auth gate rejected token")
	}
	return &UnauthenticatedError{Reason: reason}
}

// ResolvePrincipal returns the user behind an access token. Account status is
// re-read on every call, so deactivation takes effect before the token expires.
// Storage failures are returned as-is.
func (g *AuthGate) ResolvePrincipal(ctx context.Context, token string) (*entity.User, error) {
	claims, err := g.JWT.Decode(token)
	if err != nil || claims.Type != helpers.TokenTypeAccess || claims.Subject == "" {
		return nil, g.deny(ReasonInvalidToken)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, g.deny(ReasonBadSubject)
	}
	if g.Denylist != nil {
		revoked, err := g.Denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, g.deny(ReasonRevoked)
		}
	}
	u, err := g.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, g.deny(ReasonUnknownUser)
	}
	if !u.IsActive {
		return nil, g.deny(ReasonDeactivated)
	}
	return u, nil
}

// ResolveOptional is ResolvePrincipal for endpoints where auth is optional:
// it returns nil instead of an error.
func (g *AuthGate) ResolveOptional(ctx context.Context, token string) *entity.User {
	if token == "" {
		return nil
	}
	u, err := g.ResolvePrincipal(ctx, token)
	if err != nil {
		return nil
	}
	return u
}

// Revoke denylists the access token until its expiry. Without a denylist it is a no-op.
func (g *AuthGate) Revoke(ctx context.Context, token string) error {
	if g.Denylist == nil {
		return nil
	}
	claims, err := g.JWT.Decode(token)
	if err != nil || claims.ExpiresAt == nil {
		return nil
	}
	return g.Denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

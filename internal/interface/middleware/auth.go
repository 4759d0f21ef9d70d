package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ornakala-backend/internal/application"
	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	"github.com/oksasatya/ornakala-backend/pkg/helpers"
	"github.com/oksasatya/ornakala-backend/pkg/response"
)

const (
	ctxUserKey  = "currentUser"
	ctxTokenKey = "accessToken"
)

// PrincipalResolver is satisfied by *application.AuthGate.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (*entity.User, error)
}

// BearerToken extracts the access token from "Authorization: Bearer <token>",
// falling back to the access_token cookie. Returns "" when neither is present.
func BearerToken(c *gin.Context) string {
	if h := strings.TrimSpace(c.GetHeader("Authorization")); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	if tok, err := c.Cookie(helpers.AccessCookieName); err == nil {
		return tok
	}
	return ""
}

// Auth resolves the access token to an active user and stores it in the Gin
// context. Every gate rejection produces the same 401; storage failures abort with 500.
func Auth(gate PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			response.Unauthorized(c)
			return
		}
		u, err := gate.ResolvePrincipal(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, application.ErrUnauthenticated) {
				response.Unauthorized(c)
				return
			}
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
			return
		}
		c.Set(ctxUserKey, u)
		c.Set(ctxTokenKey, token)
		c.Set("userID", u.ID.String())
		c.Next()
	}
}

// OptionalResolver is satisfied by *application.AuthGate.
type OptionalResolver interface {
	ResolveOptional(ctx context.Context, token string) *entity.User
}

// OptionalAuth attaches the user when a valid token is present and never aborts.
func OptionalAuth(gate OptionalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if u := gate.ResolveOptional(c.Request.Context(), token); u != nil {
			c.Set(ctxUserKey, u)
			c.Set(ctxTokenKey, token)
			c.Set("userID", u.ID.String())
		}
		c.Next()
	}
}

// CurrentUser returns the user set by Auth or OptionalAuth, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

// AccessToken returns the raw token accepted by Auth.
func AccessToken(c *gin.Context) string {
	return c.GetString(ctxTokenKey)
}

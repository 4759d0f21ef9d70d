package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/ornakala-backend/internal/application"
	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	"github.com/oksasatya/ornakala-backend/pkg/helpers"
)

type stubResolver struct {
	users map[string]*entity.User
	err   error
}

func (s stubResolver) ResolvePrincipal(_ context.Context, token string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, &application.UnauthenticatedError{Reason: application.ReasonInvalidToken}
}

func (s stubResolver) ResolveOptional(ctx context.Context, token string) *entity.User {
	if token == "" {
		return nil
	}
	u, _ := s.ResolvePrincipal(ctx, token)
	return u
}

func newTestUser(t *testing.T) *entity.User {
	t.Helper()
	u, err := entity.NewUser(entity.MustEmail("a@b.com"), "digest", time.Now())
	require.NoError(t, err)
	return u
}

func newAuthRouter(gate stubResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", Auth(gate), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID.String(), "token": AccessToken(c)})
	})
	r.GET("/public", OptionalAuth(gate), func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.String(http.StatusOK, u.ID.String())
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	return r
}

func TestAuth(t *testing.T) {
	u := newTestUser(t)
	r := newAuthRouter(stubResolver{users: map[string]*entity.User{"good": u}})

	cases := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{"bearer", "Bearer good", "", http.StatusOK},
		{"lowercase scheme", "bearer good", "", http.StatusOK},
		{"cookie fallback", "", "good", http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", "", http.StatusUnauthorized},
		{"basic scheme", "Basic good", "", http.StatusUnauthorized},
		{"header wins over cookie", "Bearer bad", "good", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: helpers.AccessCookieName, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), u.ID.String())
				return
			}
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			assert.Contains(t, w.Body.String(), "could not validate credentials")
			assert.NotContains(t, w.Body.String(), application.ReasonInvalidToken)
		})
	}
}

func TestAuth_StorageFailureIs500(t *testing.T) {
	r := newAuthRouter(stubResolver{err: errors.New("db down")})
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	u := newTestUser(t)
	r := newAuthRouter(stubResolver{users: map[string]*entity.User{"good": u}})

	for header, want := range map[string]string{
		"":            "anonymous",
		"Bearer bad":  "anonymous",
		"Bearer good": u.ID.String(),
	} {
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, w.Body.String())
	}
}

package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access_token"
	TokenTypeRefresh = "refresh_token"
	TokenTypeReset   = "password_reset"
)

var (
	// ErrInvalidToken covers bad signatures, malformed input and expiry alike.
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidTTL   = errors.New("token ttl must be positive")
)

// JWTManager issues and validates HS256 tokens signed with one shared secret.
type JWTManager struct {
	secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ResetTTL   time.Duration
	now        func() time.Time
}

type JWTOption func(*JWTManager)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) JWTOption {
	return func(m *JWTManager) { m.now = now }
}

func NewJWTManager(secret string, accessTTL, refreshTTL, resetTTL time.Duration, opts ...JWTOption) *JWTManager {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	m := &JWTManager{
		secret:     []byte(secret),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		ResetTTL:   resetTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Issue signs {sub, type, iat, exp, jti} and returns the token with its expiry.
func (m *JWTManager) Issue(subject, tokenType string, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		return "", time.Time{}, ErrInvalidTTL
	}
	now := m.now()
	exp := now.Add(ttl)
	claims := &Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

func (m *JWTManager) IssueAccess(subject string) (string, time.Time, error) {
	return m.Issue(subject, TokenTypeAccess, m.AccessTTL)
}

func (m *JWTManager) IssueRefresh(subject string) (string, time.Time, error) {
	return m.Issue(subject, TokenTypeRefresh, m.RefreshTTL)
}

// IssueReset falls back to the configured reset ttl when ttl is zero.
func (m *JWTManager) IssueReset(subject string, ttl time.Duration) (string, time.Time, error) {
	if ttl == 0 {
		ttl = m.ResetTTL
	}
	return m.Issue(subject, TokenTypeReset, ttl)
}

// Decode validates signature, structure and expiry. Every failure is ErrInvalidToken.
func (m *JWTManager) Decode(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Verify returns the subject when the token decodes and carries expectedType.
func (m *JWTManager) Verify(tokenStr, expectedType string) (string, bool) {
	claims, err := m.Decode(tokenStr)
	if err != nil || claims.Type != expectedType || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/ornakala-backend/pkg/helpers"
)

func TestLogin_Authenticate(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "a@b.com", "Passw0rd")
	ctx := context.Background()

	got, err := f.login.Authenticate(ctx, "  A@B.com", "Passw0rd")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.login.Authenticate(ctx, "a@b.com", "wrong-pass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.login.Authenticate(ctx, "nobody@b.com", "Passw0rd")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "a@b.com", "Passw0rd")
	_, err := f.userSvc.SetActive(context.Background(), u.ID, false)
	require.NoError(t, err)

	_, err = f.login.Authenticate(context.Background(), "a@b.com", "Passw0rd")
	assert.ErrorIs(t, err, ErrInactiveAccount)

	_, err = f.login.Authenticate(context.Background(), "a@b.com", "wrong-pass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_CreateAccessToken(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "a@b.com", "Passw0rd")

	tok, err := f.login.CreateAccessToken(u)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, tok.ExpiresIn)

	sub, ok := f.jwt.Verify(tok.Token, helpers.TokenTypeAccess)
	assert.True(t, ok)
	assert.Equal(t, u.ID.String(), sub)
}

func TestLogin_RecordLogin(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "a@b.com", "Passw0rd")
	at := time.Now().Add(time.Minute).UTC()
	f.login.Now = func() time.Time { return at }

	require.NoError(t, f.login.RecordLogin(context.Background(), u))

	stored, err := f.users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
	assert.True(t, stored.LastLogin.Equal(at))
}

func TestLogin_RecordLoginKeepsLaterResetAndDeactivation(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "a@b.com", "Passw0rd")
	ctx := context.Background()

	authed, err := f.login.Authenticate(ctx, "a@b.com", "Passw0rd")
	require.NoError(t, err)

	tok, err := f.reset.GenerateResetToken(u.ID, 0)
	require.NoError(t, err)
	require.NoError(t, f.reset.ResetPassword(ctx, tok, "N3wPassword"))
	_, err = f.userSvc.SetActive(ctx, u.ID, false)
	require.NoError(t, err)

	require.NoError(t, f.login.RecordLogin(ctx, authed))

	stored, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
	assert.False(t, stored.IsActive)
	assert.False(t, f.hasher.Verify("Passw0rd", stored.PasswordHash))
	assert.True(t, f.hasher.Verify("N3wPassword", stored.PasswordHash))
}

func TestLogin_StorageErrorPropagates(t *testing.T) {
	s := NewLoginService(failingUsers{}, testHasher(), helpers.NewJWTManager(testSecret, 0, 0, 0), nil)
	_, err := s.Authenticate(context.Background(), "a@b.com", "Passw0rd")
	assert.ErrorIs(t, err, errStorage)
}

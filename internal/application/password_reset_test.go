package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordReset_HappyPath(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "a@b.com", "Passw0rd")
	ctx := context.Background()

	tok, err := f.reset.GenerateResetToken(u.ID, 0)
	require.NoError(t, err)
	require.NoError(t, f.reset.ResetPassword(ctx, tok, "N3wPassword"))

	_, err = f.login.Authenticate(ctx, "a@b.com", "Passw0rd")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.login.Authenticate(ctx, "a@b.com", "N3wPassword")
	assert.NoError(t, err)
}

func TestPasswordReset_TokenIsSingleUse(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "a@b.com", "Passw0rd")
	ctx := context.Background()

	tok, err := f.reset.GenerateResetToken(u.ID, time.Minute)
	require.NoError(t, err)
	require.NoError(t, f.reset.ResetPassword(ctx, tok, "N3wPassword"))
	assert.ErrorIs(t, f.reset.ResetPassword(ctx, tok, "An0therOne"), ErrInvalidToken)
}

func TestPasswordReset_StatelessWithoutDenylist(t *testing.T) {
	f := newFixture(t)
	f.reset.Denylist = nil
	u := f.register(t, "a@b.com", "Passw0rd")
	ctx := context.Background()

	tok, err := f.reset.GenerateResetToken(u.ID, time.Minute)
	require.NoError(t, err)
	require.NoError(t, f.reset.ResetPassword(ctx, tok, "N3wPassword"))
	assert.NoError(t, f.reset.ResetPassword(ctx, tok, "An0therOne"))
}

func TestPasswordReset_Rejections(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "a@b.com", "Passw0rd")
	ctx := context.Background()

	valid, err := f.reset.GenerateResetToken(u.ID, time.Minute)
	require.NoError(t, err)
	access, err := f.login.CreateAccessToken(u)
	require.NoError(t, err)
	ghost, err := f.reset.GenerateResetToken(uuid.New(), time.Minute)
	require.NoError(t, err)

	assert.ErrorIs(t, f.reset.ResetPassword(ctx, valid+"x", "N3wPassword"), ErrInvalidToken)
	assert.ErrorIs(t, f.reset.ResetPassword(ctx, "garbage", "N3wPassword"), ErrInvalidToken)
	assert.ErrorIs(t, f.reset.ResetPassword(ctx, access.Token, "N3wPassword"), ErrInvalidToken)
	assert.ErrorIs(t, f.reset.ResetPassword(ctx, ghost, "N3wPassword"), ErrUserNotFound)

	for pw, reason := range map[string]string{
		"weak":               ReasonTooShort,
		"alllettersnodigits": ReasonLettersAndNumbers,
		"1234567890":         ReasonLettersAndNumbers,
	} {
		err = f.reset.ResetPassword(ctx, valid, pw)
		assert.ErrorIs(t, err, ErrWeakPassword, pw)
		var policy *PasswordPolicyError
		require.ErrorAs(t, err, &policy, pw)
		assert.Equal(t, reason, policy.Reason, pw)
	}
	_, err = f.login.Authenticate(ctx, "a@b.com", "Passw0rd")
	assert.NoError(t, err, "failed reset must keep the old password")

	assert.NoError(t, f.reset.ResetPassword(ctx, valid, "N3wPassword"), "a rejected attempt must not consume the token")
}

func TestPasswordReset_LongPassword(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "a@b.com", "Passw0rd")
	ctx := context.Background()
	password := strings.Repeat("b", 90) + "2"

	tok, err := f.reset.GenerateResetToken(u.ID, 0)
	require.NoError(t, err)
	require.NoError(t, f.reset.ResetPassword(ctx, tok, password))
	_, err = f.login.Authenticate(ctx, "a@b.com", password)
	assert.NoError(t, err)
}

func TestPasswordReset_RequestReset(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "a@b.com", "Passw0rd")
	ctx := context.Background()

	tok, got, err := f.reset.RequestReset(ctx, " A@B.COM ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, tok)

	tok, got, err = f.reset.RequestReset(ctx, "nobody@b.com")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, tok)
}

func TestPasswordReset_NegativeTTL(t *testing.T) {
	f := newFixture(t)
	_, err := f.reset.GenerateResetToken(uuid.New(), -time.Second)
	assert.Error(t, err)
}

package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewUser_Defaults(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("WIB", 7*3600))
	u, err := NewUser(MustEmail("a@b.com"), "$2a$digest", now)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsVerified)
	assert.Nil(t, u.LastLogin)
	assert.Equal(t, time.UTC, u.CreatedAt.Location())
	assert.True(t, u.CreatedAt.Equal(now))
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)
}

func TestNewUser_Invalid(t *testing.T) {
	_, err := NewUser(Email{}, "digest", time.Now())
	assert.ErrorIs(t, err, ErrInvalidEmailFormat)

	_, err = NewUser(MustEmail("a@b.com"), "", time.Now())
	assert.ErrorIs(t, err, ErrEmptyPasswordHash)
}

func TestUser_TimestampsNeverGoBackwards(t *testing.T) {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	u, err := NewUser(MustEmail("a@b.com"), "digest", created)
	require.NoError(t, err)

	u.Deactivate(created.Add(-time.Hour))
	assert.False(t, u.IsActive)
	assert.Equal(t, created, u.UpdatedAt)

	later := created.Add(time.Hour)
	u.RecordLogin(later)
	require.NotNil(t, u.LastLogin)
	assert.Equal(t, later, *u.LastLogin)
	assert.Equal(t, later, u.UpdatedAt)
}

func TestUser_SetPasswordHash(t *testing.T) {
	u, err := NewUser(MustEmail("a@b.com"), "old", time.Now())
	require.NoError(t, err)

	assert.ErrorIs(t, u.SetPasswordHash("", time.Now()), ErrEmptyPasswordHash)
	assert.Equal(t, "old", u.PasswordHash)

	require.NoError(t, u.SetPasswordHash("new", time.Now()))
	assert.Equal(t, "new", u.PasswordHash)
}

func TestUser_UpdateProfileAndFullName(t *testing.T) {
	u, err := NewUser(MustEmail("a@b.com"), "digest", time.Now())
	require.NoError(t, err)
	assert.Empty(t, u.FullName())

	u.UpdateProfile(strPtr("  Ana "), nil, time.Now())
	assert.Equal(t, "Ana", u.FullName())
	assert.Nil(t, u.LastName)

	u.UpdateProfile(nil, strPtr("Maria"), time.Now())
	assert.Equal(t, "Ana Maria", u.FullName())
}

func TestKYCStatus_Valid(t *testing.T) {
	assert.True(t, KYCPending.Valid())
	assert.True(t, KYCApproved.Valid())
	assert.True(t, KYCRejected.Valid())
	assert.False(t, KYCStatus("verified").Valid())
}

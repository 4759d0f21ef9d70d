package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashIsSaltedAndVerifies(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("Passw0rd")
	require.NoError(t, err)
	second, err := h.Hash("Passw0rd")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, "Passw0rd", first)
	assert.True(t, h.Verify("Passw0rd", first))
	assert.True(t, h.Verify("Passw0rd", second))
	assert.False(t, h.Verify("passw0rd", first))
}

func TestPasswordHasher_VerifyGarbageDigest(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	for _, digest := range []string{"", "not-a-hash", "$2a$10$short", "$$$$"} {
		assert.False(t, h.Verify("Passw0rd", digest), "digest %q", digest)
	}
}

func TestNewPasswordHasher_OutOfRangeCostFallsBack(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(99).cost)
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(bcrypt.MinCost).cost)
}

func TestPasswordHasher_LongPasswordUsesFirst72Bytes(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	long := strings.Repeat("a", 80) + "1"

	digest, err := h.Hash(long)
	require.NoError(t, err)
	assert.True(t, h.Verify(long, digest))
	assert.True(t, h.Verify(long[:72], digest))
	assert.False(t, h.Verify(long[:71], digest))
}

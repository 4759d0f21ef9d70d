package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail_Normalizes(t *testing.T) {
	cases := map[string]string{
		"a@b.com":              "a@b.com",
		"  A@B.Com  ":          "a@b.com",
		"First.Last+tag@Ex.io": "first.last+tag@ex.io",
		"user_1@mail.example.org": "user_1@mail.example.org",
	}
	for in, want := range cases {
		e, err := NewEmail(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, e.String())
		assert.False(t, e.IsZero())
	}
}

func TestNewEmail_Rejects(t *testing.T) {
	for _, in := range []string{"", "   ", "plain", "@b.com", "a@", "a@b", "a@b.c", "a b@c.com", "a@b.com.", "a@@b.com"} {
		_, err := NewEmail(in)
		assert.ErrorIs(t, err, ErrInvalidEmailFormat, "input %q", in)
	}
}

func TestEmail_ZeroValue(t *testing.T) {
	var e Email
	assert.True(t, e.IsZero())
	assert.Panics(t, func() { MustEmail("nope") })
}

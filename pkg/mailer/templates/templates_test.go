package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/ornakala-backend/config"
)

func TestRender_UniversalSwitchesOnType(t *testing.T) {
	cfg := &config.Config{AppName: "Ornakala", CompanyName: "Ornakala"}

	cases := []struct {
		name    string
		data    map[string]any
		subject string
	}{
		{"welcome", NewWelcomeData(cfg, "Ana", "ana@example.com"), "Welcome to Ornakala"},
		{"login", NewLoginNotificationData(cfg, "Ana", "ana@example.com", WithIP("10.0.0.1")), "New login to your account"},
		{"profile", NewProfileUpdatedData(cfg, "Ana", "ana@example.com", map[string]string{"first_name": "Ana"}), "Your profile was updated"},
		{"kyc", NewKYCSubmittedData(cfg, "Ana Maria", "ana@example.com", "pending"), "We received your identity verification"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			subject, text, html, err := Render(Universal, tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.subject, strings.TrimSpace(subject))
			assert.NotEmpty(t, text)
			assert.NotEmpty(t, html)
		})
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("does_not_exist", map[string]any{})
	assert.Error(t, err)
}

func TestNewBaseEmailData(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	d := NewBaseEmailData(nil, Welcome, "Ana", "ana@example.com", WithTime(at), WithUserAgent("curl"))
	assert.Equal(t, "ana@example.com", d.RecipientEmail)
	assert.Equal(t, "01 March 2024, 09:30", d.Time)
	assert.Equal(t, "curl", d.UserAgent)
	assert.Empty(t, d.CompanyName)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "x", defaultFn("x", ""))
	assert.Equal(t, "x", defaultFn("x", nil))
	assert.Equal(t, "x", defaultFn("x", 0))
	assert.Equal(t, "y", defaultFn("x", "y"))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(KYCSubmitted))
	assert.False(t, Known(Universal))
}

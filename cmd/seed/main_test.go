package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
)

func TestSeededLineOmitsPassword(t *testing.T) {
	u, err := entity.NewUser(entity.MustEmail("demo@ornakala.dev"), "$2a$04$digest", time.Now())
	require.NoError(t, err)

	line := seededLine(u)
	assert.Equal(t, "seeded user: id="+u.ID.String()+" email=demo@ornakala.dev", line)
	assert.NotContains(t, line, "password")
	assert.NotContains(t, line, "digest")
}

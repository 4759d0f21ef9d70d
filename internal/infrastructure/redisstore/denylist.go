package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
	"github.com/oksasatya/ornakala-backend/pkg/helpers"
)

const revokedKeyPrefix = "auth:revoked:"

// Denylist stores revoked token ids in Redis with a TTL equal to the token's
// remaining lifetime, so entries vanish once the token would be rejected anyway.
type Denylist struct {
	rdb *redis.Client
	now func() time.Time
}

func NewDenylist(rdb *redis.Client) *Denylist {
	return &Denylist{rdb: rdb, now: time.Now}
}

var _ repo.TokenDenylist = (*Denylist)(nil)

func revokedKey(jti string) string { return revokedKeyPrefix + jti }

type revocation struct {
	RevokedAt time.Time `json:"revoked_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (d *Denylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}
	now := d.now().UTC()
	ttl := expiresAt.Sub(now)
	if ttl <= 0 {
		return nil
	}
	return helpers.RedisSetJSON(ctx, d.rdb, revokedKey(jti), revocation{RevokedAt: now, ExpiresAt: expiresAt.UTC()}, ttl)
}

func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return helpers.RedisExists(ctx, d.rdb, revokedKey(jti))
}

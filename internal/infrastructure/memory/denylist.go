package memory

import (
	"context"
	"sync"
	"time"

	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
)

// Denylist is an in-process TokenDenylist. Entries are dropped lazily once expired.
type Denylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewDenylist() *Denylist {
	return &Denylist{entries: make(map[string]time.Time), now: time.Now}
}

var _ repo.TokenDenylist = (*Denylist)(nil)

func (d *Denylist) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[jti] = expiresAt
	return nil
}

func (d *Denylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.entries[jti]
	if !ok {
		return false, nil
	}
	if !d.now().Before(exp) {
		delete(d.entries, jti)
		return false, nil
	}
	return true, nil
}

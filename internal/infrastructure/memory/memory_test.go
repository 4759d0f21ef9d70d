package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
)

func newUser(t *testing.T, email string, at time.Time) *entity.User {
	t.Helper()
	u, err := entity.NewUser(entity.MustEmail(email), "digest", at)
	require.NoError(t, err)
	return u
}

func TestUserRepository_CRUD(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()
	u := newUser(t, "a@b.com", time.Now())

	require.NoError(t, r.Add(ctx, u))
	assert.ErrorIs(t, r.Add(ctx, newUser(t, "a@b.com", time.Now())), repo.ErrDuplicateEmail)

	got, err := r.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	got.Deactivate(time.Now())
	stored, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive, "mutating a returned copy must not touch the store")

	require.NoError(t, r.Update(ctx, got))
	stored, err = r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	require.NoError(t, r.UpdatePassword(ctx, u.ID, "new-digest"))
	stored, err = r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-digest", stored.PasswordHash)

	// a patch built from a stale read writes only its own columns
	at := time.Now().Add(time.Minute)
	name := "Ana"
	require.NoError(t, r.Patch(ctx, u.ID, repo.UserPatch{FirstName: &name, LastLogin: &at, UpdatedAt: at}))
	stored, err = r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-digest", stored.PasswordHash)
	assert.False(t, stored.IsActive)
	require.NotNil(t, stored.FirstName)
	assert.Equal(t, "Ana", *stored.FirstName)
	require.NotNil(t, stored.LastLogin)
	assert.True(t, stored.LastLogin.Equal(at))
	assert.Nil(t, stored.LastName)

	missing, err := r.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, r.Delete(ctx, u.ID))
	exists, err := r.ExistsByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_ListNewestFirst(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, email := range []string{"a@b.com", "c@d.com", "e@f.com"} {
		require.NoError(t, r.Add(ctx, newUser(t, email, base.Add(time.Duration(i)*time.Hour))))
	}

	all, err := r.List(ctx, repo.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "e@f.com", all[0].Email.String())

	page, err := r.List(ctx, repo.ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "c@d.com", page[0].Email.String())

	empty, err := r.List(ctx, repo.ListFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserRepository_ConcurrentAddSameEmail(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		oks  int
		dups int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := entity.NewUser(entity.MustEmail("race@b.com"), "digest", time.Now())
			if err != nil {
				return
			}
			err = r.Add(ctx, u)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				oks++
			} else {
				dups++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, oks)
	assert.Equal(t, 19, dups)
}

func TestKYCRepository(t *testing.T) {
	r := NewKYCRepository()
	ctx := context.Background()
	userID := uuid.New()
	k := &entity.KYC{ID: uuid.New(), UserID: userID, LegalName: "Ana", Status: entity.KYCPending}

	require.NoError(t, r.Add(ctx, k))
	assert.ErrorIs(t, r.Add(ctx, &entity.KYC{ID: uuid.New(), UserID: userID}), repo.ErrDuplicateKYC)

	k.LegalName = "Ana Maria"
	k.ID = uuid.New()
	require.NoError(t, r.Update(ctx, k))
	got, err := r.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.LegalName)
	assert.NotEqual(t, k.ID, got.ID, "update keeps the original id")

	require.NoError(t, r.DeleteByUserID(ctx, userID))
	exists, err := r.ExistsByUserID(ctx, userID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDenylist(t *testing.T) {
	d := NewDenylist()
	ctx := context.Background()
	now := time.Now()
	d.now = func() time.Time { return now }

	require.NoError(t, d.Revoke(ctx, "jti-1", now.Add(time.Minute)))
	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = d.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, d.entries)
}

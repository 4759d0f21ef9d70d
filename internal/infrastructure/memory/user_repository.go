package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
)

// UserRepository keeps users in a map guarded by a mutex. Stored values are
// copies, so callers never share pointers with the store.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*entity.User
	byEmail map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

var _ repo.UserRepository = (*UserRepository)(nil)

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	cp := *u
	if u.FirstName != nil {
		v := *u.FirstName
		cp.FirstName = &v
	}
	if u.LastName != nil {
		v := *u.LastName
		cp.LastName = &v
	}
	if u.LastLogin != nil {
		v := *u.LastLogin
		cp.LastLogin = &v
	}
	return &cp
}

func (r *UserRepository) Add(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := u.Email.String()
	if _, ok := r.byEmail[email]; ok {
		return repo.ErrDuplicateEmail
	}
	r.byID[u.ID] = cloneUser(u)
	r.byEmail[email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneUser(r.byID[id]), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, normalizedEmail string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[normalizedEmail]
	if !ok {
		return nil, nil
	}
	return cloneUser(r.byID[id]), nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[u.ID]
	if !ok {
		return nil
	}
	next := cloneUser(u)
	next.Email = cur.Email
	next.CreatedAt = cur.CreatedAt
	r.byID[u.ID] = next
	return nil
}

func (r *UserRepository) Patch(_ context.Context, id uuid.UUID, p repo.UserPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil
	}
	if p.FirstName != nil {
		v := *p.FirstName
		u.FirstName = &v
	}
	if p.LastName != nil {
		v := *p.LastName
		u.LastName = &v
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.IsVerified != nil {
		u.IsVerified = *p.IsVerified
	}
	if p.LastLogin != nil {
		v := p.LastLogin.UTC()
		u.LastLogin = &v
	}
	u.UpdatedAt = p.UpdatedAt.UTC()
	return nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		_ = u.SetPasswordHash(hash, time.Now())
	}
	return nil
}

func (r *UserRepository) ExistsByEmail(_ context.Context, normalizedEmail string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[normalizedEmail]
	return ok, nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email.String())
		delete(r.byID, id)
	}
	return nil
}

func (r *UserRepository) List(_ context.Context, filter repo.ListFilter) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if filter.Offset > 0 {
		if filter.Offset >= len(all) {
			return []*entity.User{}, nil
		}
		all = all[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, nil
}

package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
)

type KYCRepository struct {
	mu       sync.RWMutex
	byUserID map[uuid.UUID]entity.KYC
}

func NewKYCRepository() *KYCRepository {
	return &KYCRepository{byUserID: make(map[uuid.UUID]entity.KYC)}
}

var _ repo.KYCRepository = (*KYCRepository)(nil)

func (r *KYCRepository) Add(_ context.Context, k *entity.KYC) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUserID[k.UserID]; ok {
		return repo.ErrDuplicateKYC
	}
	r.byUserID[k.UserID] = *k
	return nil
}

func (r *KYCRepository) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.KYC, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.byUserID[userID]
	if !ok {
		return nil, nil
	}
	return &k, nil
}

func (r *KYCRepository) Update(_ context.Context, k *entity.KYC) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byUserID[k.UserID]
	if !ok {
		return nil
	}
	next := *k
	next.ID = cur.ID
	next.CreatedAt = cur.CreatedAt
	r.byUserID[k.UserID] = next
	return nil
}

func (r *KYCRepository) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUserID, userID)
	return nil
}

func (r *KYCRepository) ExistsByUserID(_ context.Context, userID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byUserID[userID]
	return ok, nil
}

package memory

import (
	"context"
	"sync"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

// MappingRepository keeps identifier mappings in a map guarded by a RWMutex:
// inserts are exclusive, lookups share the read lock.
type MappingRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Mapping
}

func NewMappingRepository() *MappingRepository {
	return &MappingRepository{items: make(map[string]domain.Mapping)}
}

func (r *MappingRepository) Insert(_ context.Context, m *domain.Mapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[m.ID]; ok {
		return domain.ErrMappingExists
	}
	r.items[m.ID] = *m
	return nil
}

func (r *MappingRepository) FindByID(_ context.Context, id string) (*domain.Mapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrMappingNotFound
	}
	return &m, nil
}

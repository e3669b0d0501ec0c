// Package memory holds the process-local stores. Contents live as long as the
// store value; nothing is written to disk.
package memory

import (
	"context"
	"sync"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

// CredentialStore is a mutex-guarded principal table.
type CredentialStore struct {
	mu    sync.RWMutex
	users map[string]domain.CredentialRecord
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{users: make(map[string]domain.CredentialRecord)}
}

func (s *CredentialStore) Lookup(_ context.Context, username string) (*domain.CredentialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[username]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	return &rec, nil
}

func (s *CredentialStore) Create(_ context.Context, rec *domain.CredentialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[rec.Username]; ok {
		return domain.ErrPrincipalExists
	}
	s.users[rec.Username] = *rec
	return nil
}

func (s *CredentialStore) SetDisabled(_ context.Context, username string, disabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[username]
	if !ok {
		return domain.ErrPrincipalNotFound
	}
	rec.Disabled = disabled
	s.users[username] = rec
	return nil
}

// Len returns the number of principals.
func (s *CredentialStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

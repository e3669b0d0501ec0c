package service

import (
	"context"
	"sync"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

type stubCredentialStore struct {
	users     map[string]*domain.CredentialRecord
	lookupErr error
}

func newStubCredentialStore(records ...*domain.CredentialRecord) *stubCredentialStore {
	s := &stubCredentialStore{users: make(map[string]*domain.CredentialRecord)}
	for _, r := range records {
		s.users[r.Username] = r
	}
	return s
}

func (s *stubCredentialStore) Lookup(_ context.Context, username string) (*domain.CredentialRecord, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	r, ok := s.users[username]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	clone := *r
	return &clone, nil
}

func (s *stubCredentialStore) Create(_ context.Context, r *domain.CredentialRecord) error {
	if _, ok := s.users[r.Username]; ok {
		return domain.ErrPrincipalExists
	}
	clone := *r
	s.users[r.Username] = &clone
	return nil
}

func (s *stubCredentialStore) SetDisabled(_ context.Context, username string, disabled bool) error {
	r, ok := s.users[username]
	if !ok {
		return domain.ErrPrincipalNotFound
	}
	r.Disabled = disabled
	return nil
}

// stubHasher is a reversible fake; it counts Verify calls so tests can check
// that unknown users still pay for a comparison.
type stubHasher struct {
	mu         sync.Mutex
	verifies   int
	lastDigest string
}

func (h *stubHasher) Hash(password string) (string, error) {
	return "stub$" + password, nil
}

func (h *stubHasher) Verify(password, digest string) bool {
	h.mu.Lock()
	h.verifies++
	h.lastDigest = digest
	h.mu.Unlock()
	return digest == "stub$"+password
}

func (h *stubHasher) lastVerified() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastDigest
}

// prefixHasher produces digests under its own prefix, standing in for a
// second algorithm.
type prefixHasher struct{ prefix string }

func (h prefixHasher) Hash(password string) (string, error) { return h.prefix + password, nil }
func (h prefixHasher) Verify(password, digest string) bool { return digest == h.prefix+password }

func (h *stubHasher) verifyCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.verifies
}

type stubMappingRepo struct {
	mu        sync.Mutex
	items     map[string]*domain.Mapping
	insertErr error
	findErr   error
}

func newStubMappingRepo() *stubMappingRepo {
	return &stubMappingRepo{items: make(map[string]*domain.Mapping)}
}

func (r *stubMappingRepo) Insert(_ context.Context, m *domain.Mapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, ok := r.items[m.ID]; ok {
		return domain.ErrMappingExists
	}
	clone := *m
	r.items[m.ID] = &clone
	return nil
}

func (r *stubMappingRepo) FindByID(_ context.Context, id string) (*domain.Mapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrMappingNotFound
	}
	clone := *m
	return &clone, nil
}

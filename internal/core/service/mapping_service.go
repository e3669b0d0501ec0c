package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
	"github.com/99minutos/uuid-resolver/internal/core/ports"
)

// maxGenerateAttempts bounds retries when a freshly generated ID is already taken.
const maxGenerateAttempts = 3

// IDGenerator returns a new unpredictable identifier.
type IDGenerator func() (string, error)

// RandomUUID generates version 4 UUIDs from crypto/rand.
func RandomUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type MappingService struct {
	repo   ports.MappingRepository
	newID  IDGenerator
	now    func() time.Time
	logger zerolog.Logger
}

func NewMappingService(repo ports.MappingRepository, newID IDGenerator, logger zerolog.Logger) *MappingService {
	if newID == nil {
		newID = RandomUUID
	}
	return &MappingService{repo: repo, newID: newID, now: time.Now, logger: logger}
}

// Generate binds value to a fresh identifier.
func (s *MappingService) Generate(ctx context.Context, value, createdBy string) (*domain.Mapping, error) {
	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return nil, fmt.Errorf("generate id: %w", err)
		}

		m := &domain.Mapping{
			ID:        id,
			Value:     value,
			CreatedBy: createdBy,
			CreatedAt: s.now().UTC(),
		}
		err = s.repo.Insert(ctx, m)
		if err == nil {
			s.logger.Info().Str("id", id).Str("created_by", createdBy).Msg("mapping generated")
			return m, nil
		}
		if !errors.Is(err, domain.ErrMappingExists) {
			return nil, fmt.Errorf("generate: %w", err)
		}
		s.logger.Warn().Str("id", id).Int("attempt", attempt).Msg("generated id collided, retrying")
	}
	return nil, fmt.Errorf("generate: %w after %d attempts", domain.ErrMappingExists, maxGenerateAttempts)
}

// Resolve returns the mapping for id or domain.ErrMappingNotFound.
func (s *MappingService) Resolve(ctx context.Context, id string) (*domain.Mapping, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrMappingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve: %w", err)
	}
	return m, nil
}

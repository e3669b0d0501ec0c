package ports

import (
	"context"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

// MappingRepository persists identifier mappings.
type MappingRepository interface {
	// Insert stores m, failing with domain.ErrMappingExists if the ID is taken.
	Insert(ctx context.Context, m *domain.Mapping) error
	// FindByID returns domain.ErrMappingNotFound for unknown IDs.
	FindByID(ctx context.Context, id string) (*domain.Mapping, error)
}

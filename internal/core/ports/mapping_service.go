package ports

import (
	"context"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

// MappingService generates and resolves identifiers.
type MappingService interface {
	Generate(ctx context.Context, value, createdBy string) (*domain.Mapping, error)
	Resolve(ctx context.Context, id string) (*domain.Mapping, error)
}

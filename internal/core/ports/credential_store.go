package ports

import (
	"context"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

// CredentialStore holds principal records. Lookup returns
// domain.ErrPrincipalNotFound for unknown usernames.
type CredentialStore interface {
	Lookup(ctx context.Context, username string) (*domain.CredentialRecord, error)
	Create(ctx context.Context, record *domain.CredentialRecord) error
	SetDisabled(ctx context.Context, username string, disabled bool) error
}

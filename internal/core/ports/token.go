package ports

import (
	"context"
	"time"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

// IssuedToken is a freshly signed access token.
type IssuedToken struct {
	AccessToken string
	ExpiresAt   time.Time
	TTL         time.Duration
}

// TokenIssuer mints signed tokens for an already authenticated username.
// A ttl <= 0 selects the issuer's default lifetime.
type TokenIssuer interface {
	Issue(username string, ttl time.Duration) (IssuedToken, error)
}

// TokenValidator turns a presented token into the principal it names.
// Rejections are *domain.AuthError values.
type TokenValidator interface {
	Validate(ctx context.Context, raw string) (*domain.Principal, error)
}

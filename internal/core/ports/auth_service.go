package ports

import (
	"context"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (IssuedToken, *domain.Principal, error)
}

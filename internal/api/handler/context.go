package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/uuid-resolver/internal/api/middleware"
	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

// currentPrincipal returns the principal placed on the context by the access
// gate. A handler mounted without the gate fails closed.
func currentPrincipal(c echo.Context) (*domain.Principal, error) {
	p := middleware.Principal(c)
	if p == nil {
		return nil, domain.NewAuthError(domain.ReasonNoCredentials, nil)
	}
	return p, nil
}

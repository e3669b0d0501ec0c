package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
	"github.com/99minutos/uuid-resolver/internal/core/ports"
)

// RequireActive is the second half of the access gate: it rejects principals
// whose account is disabled. It must run after Auth.
func RequireActive() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal(c)
			if p == nil {
				return domain.NewAuthError(domain.ReasonNoCredentials, nil)
			}
			if !p.Active() {
				return domain.NewAuthError(domain.ReasonDisabled, nil)
			}
			return next(c)
		}
	}
}

// Gate returns the full access gate chain for protected routes.
func Gate(validator ports.TokenValidator) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{Auth(validator), RequireActive()}
}

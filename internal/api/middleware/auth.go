package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
	"github.com/99minutos/uuid-resolver/internal/core/ports"
)

const principalKey = "principal"

// Auth is the first half of the access gate. It extracts the bearer token,
// validates it and stores the resolved principal on the context. Every
// failure is returned as a *domain.AuthError and next is never called.
func Auth(validator ports.TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.NewAuthError(domain.ReasonNoCredentials, nil)
			}

			p, err := validator.Validate(c.Request().Context(), raw)
			if err != nil {
				return err
			}

			SetPrincipal(c, p)
			return next(c)
		}
	}
}

// Principal returns the principal stored by Auth, or nil when Auth did not run.
func Principal(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}

// SetPrincipal stores p as the authenticated principal of the request.
func SetPrincipal(c echo.Context, p *domain.Principal) {
	c.Set(principalKey, p)
}

// bearerToken parses "Bearer <token>". Any other scheme, or an empty token,
// counts as no credentials presented.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

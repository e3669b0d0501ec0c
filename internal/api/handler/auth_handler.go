package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/uuid-resolver/internal/api/metrics"
	"github.com/99minutos/uuid-resolver/internal/core/domain"
	"github.com/99minutos/uuid-resolver/internal/core/ports"
)

const tokenTypeBearer = "bearer"

type AuthHandler struct {
	authService ports.AuthService
	metrics     *metrics.Metrics
}

func NewAuthHandler(authService ports.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m}
}

// Token exchanges a username and password for an access token.
//
// @Summary      Issue access token
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username    formData  string  true   "Username"
// @Param        password    formData  string  true   "Password"
// @Param        grant_type  formData  string  false  "Must be 'password' when present"
// @Param        scope       formData  string  false  "Ignored"
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return bindError("body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tok, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginInvalidCredentials).Inc()
		} else {
			h.metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginError).Inc()
		}
		return err
	}
	h.metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginSuccess).Inc()

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(tok.TTL.Seconds()),
	})
}

// Me returns the principal the presented token belongs to.
//
// @Summary      Current principal
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  principalResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, principalResponse{
		Username: p.Username,
		Email:    nullable(p.Email),
		FullName: nullable(p.FullName),
		Disabled: p.Disabled,
	})
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/uuid-resolver/internal/api/metrics"
	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

const bearerChallenge = "Bearer"

// errorResponse is the canonical error envelope for all API errors.
// Detail is a string, or a []domain.FieldViolation for validation failures.
type errorResponse struct {
	Detail any `json:"detail"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Collapses access gate rejections into a uniform 401 while logging and
//     counting the internal reason.
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"detail": ...}.
func NewHTTPErrorHandler(log zerolog.Logger, m *metrics.Metrics) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, detail := resolveError(err, log, m, c)
		if code == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, bearerChallenge)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Detail: detail})
	}
}

func resolveError(err error, log zerolog.Logger, m *metrics.Metrics, c echo.Context) (int, any) {
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		m.AuthRejectionsTotal.WithLabelValues(string(ae.Reason)).Inc()
		log.Info().
			Err(err).
			Str("reason", string(ae.Reason)).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request rejected by access gate")
		return http.StatusUnauthorized, rejectionDetail(ae.Reason)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Violations
	}

	// Echo's own errors (404 from router, 405, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Int("status", he.Code).Msg("echo error")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Incorrect username or password"
	case errors.Is(err, domain.ErrMappingNotFound):
		return http.StatusNotFound, "UUID not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// rejectionDetail is the only part of a rejection a client ever sees.
func rejectionDetail(reason domain.AuthFailureReason) string {
	switch reason {
	case domain.ReasonNoCredentials:
		return "Not authenticated"
	case domain.ReasonDisabled:
		return "Inactive user"
	default:
		return "Could not validate credentials"
	}
}

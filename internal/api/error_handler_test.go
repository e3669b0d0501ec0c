package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/99minutos/uuid-resolver/internal/api/metrics"
	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

func renderError(t *testing.T, m *metrics.Metrics, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/resolve/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop(), m)(err, c)

	var body map[string]any
	if jsonErr := json.Unmarshal(rec.Body.Bytes(), &body); jsonErr != nil {
		t.Fatalf("invalid json: %v", jsonErr)
	}
	return rec, body
}

func TestErrorHandler_AuthRejections(t *testing.T) {
	tests := []struct {
		reason domain.AuthFailureReason
		detail string
	}{
		{domain.ReasonNoCredentials, "Not authenticated"},
		{domain.ReasonBadSignature, "Could not validate credentials"},
		{domain.ReasonExpired, "Could not validate credentials"},
		{domain.ReasonMissingSubject, "Could not validate credentials"},
		{domain.ReasonUnknownPrincipal, "Could not validate credentials"},
		{domain.ReasonDisabled, "Inactive user"},
	}

	m := metrics.New(prometheus.NewRegistry())
	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			err := fmt.Errorf("gate: %w", domain.NewAuthError(tt.reason, errors.New("cause")))
			rec, body := renderError(t, m, err)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != "Bearer" {
				t.Fatalf("expected WWW-Authenticate: Bearer, got %q", got)
			}
			if body["detail"] != tt.detail {
				t.Fatalf("expected detail %q, got %v", tt.detail, body["detail"])
			}
			if got := testutil.ToFloat64(m.AuthRejectionsTotal.WithLabelValues(string(tt.reason))); got != 1 {
				t.Fatalf("expected rejection counted once, got %v", got)
			}
		})
	}
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      int
		detail    string
		challenge bool
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect username or password", true},
		{"mapping not found", fmt.Errorf("resolve: %w", domain.ErrMappingNotFound), http.StatusNotFound, "UUID not found", false},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "Method Not Allowed", false},
		{"unexpected", errors.New("mongo: connection refused"), http.StatusInternalServerError, "Internal Server Error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := renderError(t, metrics.New(prometheus.NewRegistry()), tt.err)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			if body["detail"] != tt.detail {
				t.Fatalf("expected detail %q, got %v", tt.detail, body["detail"])
			}
			if hasChallenge := rec.Header().Get(echo.HeaderWWWAuthenticate) != ""; hasChallenge != tt.challenge {
				t.Fatalf("WWW-Authenticate present=%v, want %v", hasChallenge, tt.challenge)
			}
		})
	}
}

func TestErrorHandler_ValidationError(t *testing.T) {
	err := &domain.ValidationError{Violations: []domain.FieldViolation{
		{Field: "value", Message: "value is required"},
	}}
	rec, body := renderError(t, metrics.New(prometheus.NewRegistry()), err)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	detail, ok := body["detail"].([]any)
	if !ok || len(detail) != 1 {
		t.Fatalf("expected one violation, got %v", body["detail"])
	}
	v := detail[0].(map[string]any)
	if v["field"] != "value" || v["message"] != "value is required" {
		t.Fatalf("unexpected violation: %+v", v)
	}
}

package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/99minutos/uuid-resolver/internal/api/metrics"
	"github.com/99minutos/uuid-resolver/internal/api/middleware"
	"github.com/99minutos/uuid-resolver/internal/core/domain"
	"github.com/99minutos/uuid-resolver/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (ports.IssuedToken, *domain.Principal, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (ports.IssuedToken, *domain.Principal, error) {
	return s.loginFn(ctx, username, password)
}

type stubMappingService struct {
	generateFn func(ctx context.Context, value, createdBy string) (*domain.Mapping, error)
	resolveFn  func(ctx context.Context, id string) (*domain.Mapping, error)
}

func (s *stubMappingService) Generate(ctx context.Context, value, createdBy string) (*domain.Mapping, error) {
	return s.generateFn(ctx, value, createdBy)
}

func (s *stubMappingService) Resolve(ctx context.Context, id string) (*domain.Mapping, error) {
	return s.resolveFn(ctx, id)
}

func newTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

// newTestContext builds an echo context with the real validator attached.
func newTestContext(method, target, contentType, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withPrincipal(c echo.Context, p *domain.Principal) {
	middleware.SetPrincipal(c, p)
}

func requireViolation(t *testing.T, err error, field string) {
	t.Helper()
	ve, ok := err.(*domain.ValidationError)
	if !ok {
		t.Fatalf("expected *domain.ValidationError, got %T (%v)", err, err)
	}
	for _, v := range ve.Violations {
		if v.Field == field {
			return
		}
	}
	t.Fatalf("no violation for %q in %+v", field, ve.Violations)
}

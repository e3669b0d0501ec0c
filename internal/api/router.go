package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/uuid-resolver/docs"
	"github.com/99minutos/uuid-resolver/internal/api/handler"
	"github.com/99minutos/uuid-resolver/internal/api/metrics"
	"github.com/99minutos/uuid-resolver/internal/api/middleware"
	"github.com/99minutos/uuid-resolver/internal/core/ports"
	"github.com/99minutos/uuid-resolver/internal/infrastructure/http/handlers"
)

const defaultBodyLimit = "1M"

// Deps is everything the router needs. Stores and services are built by the
// caller; the router only wires them to routes.
type Deps struct {
	Log       zerolog.Logger
	Auth      ports.AuthService
	Validator ports.TokenValidator
	Mappings  ports.MappingService
	Metrics   *metrics.Metrics
	// Registry backs both the request metrics middleware and /metrics.
	Registry       *prometheus.Registry
	Checks         []handlers.Check
	BodyLimit      string
	SwaggerEnabled bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Metrics)

	bodyLimit := d.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "uuid_resolver",
		Subsystem:  "http",
		Registerer: d.Registry,
		Skipper:    skipProbes,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Metrics)
	mappingHandler := handler.NewMappingHandler(d.Mappings, d.Metrics)
	gate := middleware.Gate(d.Validator)

	// --- Auth routes ---
	e.POST("/token", authHandler.Token)
	e.GET("/users/me", authHandler.Me, gate...)

	// --- Mapping routes ---
	e.POST("/generate", mappingHandler.Generate, gate...)
	e.GET("/resolve/:uuid", mappingHandler.Resolve, gate...)

	// --- Health checks (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Registry}))

	if d.SwaggerEnabled {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}

// requestLogger writes one access log line per request through zerolog.
// Errors are forwarded to the central error handler first so the logged
// status is the one the client received.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		Skipper:      skipProbes,
		HandleError:  true,
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error()
			}
			ev.
				Str("method", v.Method).
				Str("path", v.URIPath).
				Str("route", v.RoutePath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

func skipProbes(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/metrics" || strings.HasPrefix(p, "/health")
}

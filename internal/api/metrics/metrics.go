// Package metrics defines the custom Prometheus metrics of the resolver API.
// It is the single source of truth for metric names, labels and help strings.
//
// Build one Metrics per registry with New; the HTTP layer shares that
// registry with the echoprometheus request middleware and the /metrics
// handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "uuid_resolver"

// Login results.
const (
	LoginSuccess            = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginError              = "error"
)

// Resolution results.
const (
	ResolveHit  = "hit"
	ResolveMiss = "miss"
)

type Metrics struct {
	// ── Auth ──────────────────────────────────────────────────────────────

	// LoginAttemptsTotal counts POST /token outcomes.
	// Label:
	//   - result: "success", "invalid_credentials" or "error"
	LoginAttemptsTotal *prometheus.CounterVec

	// AuthRejectionsTotal counts access gate rejections. Clients see one
	// collapsed message; this keeps the real reason observable.
	// Label:
	//   - reason: an AuthFailureReason (e.g. "expired", "disabled_account")
	AuthRejectionsTotal *prometheus.CounterVec

	// ── Mappings ──────────────────────────────────────────────────────────

	// MappingsGeneratedTotal counts identifiers handed out.
	MappingsGeneratedTotal prometheus.Counter

	// MappingResolutionsTotal counts resolve lookups.
	// Label:
	//   - result: "hit" or "miss"
	MappingResolutionsTotal *prometheus.CounterVec
}

// New creates and registers all metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LoginAttemptsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "login_attempts_total",
				Help:      "Total number of token requests, by result.",
			},
			[]string{"result"},
		),
		AuthRejectionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_rejections_total",
				Help:      "Total number of requests rejected by the access gate, by internal reason.",
			},
			[]string{"reason"},
		),
		MappingsGeneratedTotal: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mappings_generated_total",
				Help:      "Total number of identifiers generated.",
			},
		),
		MappingResolutionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mapping_resolutions_total",
				Help:      "Total number of identifier resolutions, by result.",
			},
			[]string{"result"},
		),
	}
}

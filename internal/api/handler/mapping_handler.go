package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/uuid-resolver/internal/api/metrics"
	"github.com/99minutos/uuid-resolver/internal/core/domain"
	"github.com/99minutos/uuid-resolver/internal/core/ports"
)

// MappingHandler handles HTTP requests for identifier generation and lookup.
type MappingHandler struct {
	service ports.MappingService
	metrics *metrics.Metrics
}

func NewMappingHandler(service ports.MappingService, m *metrics.Metrics) *MappingHandler {
	return &MappingHandler{service: service, metrics: m}
}

// Generate binds a value to a fresh identifier.
//
// @Summary      Generate identifier
// @Tags         mappings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      generateRequest  true  "Value to store"
// @Success      200   {object}  generateResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /generate [post]
func (h *MappingHandler) Generate(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return bindError("body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := h.service.Generate(c.Request().Context(), *req.Value, p.Username)
	if err != nil {
		return err
	}
	h.metrics.MappingsGeneratedTotal.Inc()

	return c.JSON(http.StatusOK, generateResponse{UUID: m.ID})
}

// Resolve returns the value bound to an identifier.
//
// @Summary      Resolve identifier
// @Tags         mappings
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path      string  true  "Identifier returned by /generate"
// @Success      200   {object}  resolveResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /resolve/{uuid} [get]
func (h *MappingHandler) Resolve(c echo.Context) error {
	if _, err := currentPrincipal(c); err != nil {
		return err
	}

	m, err := h.service.Resolve(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		if errors.Is(err, domain.ErrMappingNotFound) {
			h.metrics.MappingResolutionsTotal.WithLabelValues(metrics.ResolveMiss).Inc()
		}
		return err
	}
	h.metrics.MappingResolutionsTotal.WithLabelValues(metrics.ResolveHit).Inc()

	return c.JSON(http.StatusOK, resolveResponse{Value: m.Value})
}

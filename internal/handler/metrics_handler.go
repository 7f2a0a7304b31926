package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/skynet-epr-api/internal/service"
	"github.com/noah-isme/skynet-epr-api/pkg/response"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	db      Pinger
	timeout time.Duration
}

// NewMetricsHandler constructs a metrics handler. db may be nil, in which
// case readiness always succeeds.
func NewMetricsHandler(metrics *service.MetricsService, db Pinger) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, db: db, timeout: 2 * time.Second}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health godoc
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Skynet EPR API is running"})
}

// Ready godoc
// @Summary Readiness probe (database ping)
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /ready [get]
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
}

// IndexHandler lists the public endpoints under the API prefix.
type IndexHandler struct {
	version   string
	endpoints []string
}

// NewIndexHandler builds the endpoint index for prefix.
func NewIndexHandler(prefix, version string) *IndexHandler {
	return &IndexHandler{
		version: version,
		endpoints: []string{
			"GET " + prefix + "/people",
			"GET " + prefix + "/people/:id",
			"GET " + prefix + "/epr?personId=xxx",
			"GET " + prefix + "/epr/export?personId=xxx&format=csv|pdf",
			"GET " + prefix + "/epr/:id",
			"POST " + prefix + "/epr",
			"PATCH " + prefix + "/epr/:id",
			"POST " + prefix + "/epr/assist",
		},
	}
}

// Index godoc
// @Summary API index
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router / [get]
func (h *IndexHandler) Index(c *gin.Context) {
	response.OK(c, gin.H{
		"message":   "Skynet EPR API",
		"version":   h.version,
		"endpoints": h.endpoints,
	})
}

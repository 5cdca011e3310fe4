package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zaphod-black/BookingSearchMCP/services/booking"
	"github.com/zaphod-black/BookingSearchMCP/services/handoff"
	"github.com/zaphod-black/BookingSearchMCP/utils"
)

// HealthHandler reports service liveness, payment-collaborator reachability,
// cache effectiveness and operation timings.
type HealthHandler struct {
	pipeline *booking.DefaultPipeline
	handoff  handoff.Client
	monitor  *utils.VoiceMonitor
}

// NewHealthHandler creates the handler.
func NewHealthHandler(pipeline *booking.DefaultPipeline, handoffClient handoff.Client, monitor *utils.VoiceMonitor) *HealthHandler {
	return &HealthHandler{pipeline: pipeline, handoff: handoffClient, monitor: monitor}
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(c *gin.Context) {
	handoffStatus := h.handoff.HealthCheck(c.Request.Context())

	status := http.StatusOK
	overall := "up"
	if !handoffStatus.Healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status":      overall,
		"handoff":     handoffStatus,
		"cache":       h.pipeline.CacheStats(),
		"performance": h.monitor.Snapshot(),
	})
}

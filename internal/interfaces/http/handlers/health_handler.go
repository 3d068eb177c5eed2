package handlers

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	version   string
	startedAt time.Time
	ready     atomic.Bool
}

// NewHealthHandler creates a HealthHandler. The service starts not ready;
// call SetReady once dependencies are wired.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		version:   version,
		startedAt: time.Now(),
	}
}

// SetReady flips the readiness state.
func (h *HealthHandler) SetReady(ready bool) {
	h.ready.Store(ready)
}

// Healthz handles GET /healthz: alive as long as the process serves.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}

// Readyz handles GET /readyz: 503 until SetReady(true) was called.
func (h *HealthHandler) Readyz(c *gin.Context) {
	if !h.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

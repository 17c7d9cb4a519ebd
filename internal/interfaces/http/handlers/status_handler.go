package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexlearn/agenthub/internal/infrastructure/monitoring"
)

// StatusHandler serves liveness and runtime stats endpoints.
type StatusHandler struct {
	serviceName string
	version     string
	monitor     *monitoring.Monitor
}

// NewStatusHandler creates a handler for /status and /stats
func NewStatusHandler(serviceName, version string, monitor *monitoring.Monitor) *StatusHandler {
	return &StatusHandler{
		serviceName: serviceName,
		version:     version,
		monitor:     monitor,
	}
}

// Status handles GET /status — liveness probe, always 200.
func (h *StatusHandler) Status(c *gin.Context) {
	respondOK(c, http.StatusOK, "Service is running", gin.H{
		"service":   h.serviceName,
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Stats handles GET /stats — runtime counters for operators.
func (h *StatusHandler) Stats(c *gin.Context) {
	respondOK(c, http.StatusOK, "Stats retrieved successfully", h.monitor.GetStats())
}

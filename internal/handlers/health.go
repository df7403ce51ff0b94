package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/estate/api/internal/logger"
	"github.com/stwalsh4118/estate/api/internal/middleware"
)

const (
	// APIVersion is the current version of the API
	APIVersion = "0.1.0"
	// HealthCheckTimeout bounds each dependency ping during a readiness check
	HealthCheckTimeout = 2 * time.Second
)

// Dependency states reported by the readiness check.
const (
	StateUp   = "up"
	StateDown = "down"
)

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check and readiness endpoints.
type HealthHandler struct {
	checks    map[string]Pinger
	startTime time.Time
	env       string
	source    string
}

// NewHealthHandler creates a HealthHandler. checks maps a dependency name (for example
// "catalog" or "cache") to the component to ping; source names the configured catalog source.
func NewHealthHandler(checks map[string]Pinger, env, source string) *HealthHandler {
	return &HealthHandler{
		checks:    checks,
		startTime: time.Now(),
		env:       env,
		source:    source,
	}
}

// HealthResponse represents the basic health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// InfoResponse represents the API information response.
type InfoResponse struct {
	Version       string   `json:"version"`
	Environment   string   `json:"environment"`
	Uptime        string   `json:"uptime"`
	CatalogSource string   `json:"catalog_source"`
	Dependencies  []string `json:"dependencies"`
}

// Health handles GET /health endpoint.
// This is a liveness check that never touches dependencies.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
	})
}

// Ready handles GET /health/ready endpoint.
// Every dependency is pinged with its own timeout; any failure makes the service not ready (503).
func (h *HealthHandler) Ready(c *gin.Context) {
	log := middleware.GetLogger(c)
	states := make(map[string]string, len(h.checks))
	ready := true

	for name, dep := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), HealthCheckTimeout)
		err := dep.Ping(ctx)
		cancel()

		if err != nil {
			ready = false
			states[name] = StateDown
			if log != nil {
				log.Error("Dependency health check failed", err, logger.Fields{
					"dependency": name,
					"timeout":    HealthCheckTimeout.String(),
				})
			}
			continue
		}
		states[name] = StateUp
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, ReadyResponse{
			Status: "not_ready",
			Checks: states,
		})
		return
	}

	c.JSON(http.StatusOK, ReadyResponse{
		Status: "ready",
		Checks: states,
	})
}

// Info handles GET /api/v1/info endpoint.
// Returns API metadata including version, environment, uptime and wiring.
func (h *HealthHandler) Info(c *gin.Context) {
	deps := make([]string, 0, len(h.checks))
	for name := range h.checks {
		deps = append(deps, name)
	}
	sort.Strings(deps)

	c.JSON(http.StatusOK, InfoResponse{
		Version:       APIVersion,
		Environment:   h.env,
		Uptime:        formatUptime(time.Since(h.startTime)),
		CatalogSource: h.source,
		Dependencies:  deps,
	})
}

// formatUptime formats a duration into a human-readable string.
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything the readiness check can ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain check such as database.DB.HealthCheck.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// WarmStatus reports the last background weather refresh.
type WarmStatus interface {
	Status() (time.Time, error)
}

type HealthHandler struct {
	checks map[string]Pinger
	warmer WarmStatus
}

// NewHealthHandler takes the dependencies the readiness check pings. A nil
// entry is skipped; warmer may be nil when background jobs are off.
func NewHealthHandler(checks map[string]Pinger, warmer WarmStatus) *HealthHandler {
	return &HealthHandler{checks: checks, warmer: warmer}
}

// GetHealth returns 200 whenever the server is running. Used for liveness checks.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"time":    time.Now().UTC(),
		"service": "weather-caddie",
	})
}

// GetReady returns 200 only when every dependency answers. A failed weather
// warm-up is reported but does not fail readiness; advice degrades to 503
// per request instead.
func (h *HealthHandler) GetReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	ready := true
	for name, p := range h.checks {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			checks[name] = err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	body := gin.H{"status": "ready", "checks": checks}
	if h.warmer != nil {
		lastRun, err := h.warmer.Status()
		warm := gin.H{"last_run": lastRun}
		if err != nil {
			warm["error"] = err.Error()
		}
		body["weather_warmer"] = warm
	}

	if !ready {
		body["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

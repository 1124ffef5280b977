package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// HealthHandler reports liveness and process uptime
type HealthHandler struct {
	startedAt time.Time
	now       func() time.Time
}

// NewHealthHandler creates a health handler counting uptime from startedAt
func NewHealthHandler(startedAt time.Time) *HealthHandler {
	return &HealthHandler{
		startedAt: startedAt,
		now:       time.Now,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	now := h.now()
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Uptime:    now.Sub(h.startedAt).Seconds(),
	})
}

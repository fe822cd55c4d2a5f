package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/vbpupil/measurement-converter/internal/application/dto"
	"github.com/vbpupil/measurement-converter/internal/application/service"
)

// HealthHandler reports liveness and the state of the density table.
type HealthHandler struct {
	materials *service.MaterialService
	version   string
	started   time.Time
}

// NewHealthHandler creates a HealthHandler; uptime is measured from now.
func NewHealthHandler(materials *service.MaterialService, version string) *HealthHandler {
	return &HealthHandler{materials: materials, version: version, started: time.Now()}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp := dto.HealthResponse{
		Status:  dto.StatusHealthy,
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Checks:  map[string]dto.HealthCheckResult{},
	}

	status := http.StatusOK
	count, err := h.materials.Count(r.Context())
	switch {
	case err != nil:
		resp.Status = dto.StatusUnhealthy
		resp.Checks["density_table"] = dto.HealthCheckResult{Status: dto.StatusUnhealthy, Message: err.Error()}
		status = http.StatusServiceUnavailable
	case count == 0:
		resp.Status = dto.StatusUnhealthy
		resp.Checks["density_table"] = dto.HealthCheckResult{Status: dto.StatusUnhealthy, Message: "no materials loaded"}
		status = http.StatusServiceUnavailable
	default:
		resp.Checks["density_table"] = dto.HealthCheckResult{
			Status:       dto.StatusHealthy,
			ResponseTime: time.Since(start).Milliseconds(),
		}
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

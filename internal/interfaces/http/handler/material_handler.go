package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vbpupil/measurement-converter/internal/application/service"
	"github.com/vbpupil/measurement-converter/internal/domain/repository"
)

// defaultPageSize applies when no limit is given.
const defaultPageSize = 50

// MaterialHandler serves /materials.
type MaterialHandler struct {
	service *service.MaterialService
	version string
}

// NewMaterialHandler creates a MaterialHandler.
func NewMaterialHandler(svc *service.MaterialService, version string) *MaterialHandler {
	return &MaterialHandler{service: svc, version: version}
}

// Routes mounts the handler's endpoints.
func (h *MaterialHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{name}", h.Get)
}

// List returns a page of materials.
func (h *MaterialHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.MaterialFilter{
		SearchTerm: q.Get("search"),
		SortBy:     q.Get("sort_by"),
		SortOrder:  q.Get("sort_order"),
		Limit:      defaultPageSize,
	}

	for _, p := range []struct {
		key string
		dst **float64
	}{
		{"min_density", &filter.MinDensity},
		{"max_density", &filter.MaxDensity},
	} {
		raw := q.Get(p.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			badRequest(w, r, h.version, p.key, "must be a number", raw)
			return
		}
		*p.dst = &v
	}

	for _, p := range []struct {
		key string
		dst *int
	}{
		{"limit", &filter.Limit},
		{"offset", &filter.Offset},
	} {
		raw := q.Get(p.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(w, r, h.version, p.key, "must be an integer", raw)
			return
		}
		*p.dst = v
	}

	page, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, h.version, err)
		return
	}
	respond(w, r, http.StatusOK, h.version, page)
}

// Get returns one material.
func (h *MaterialHandler) Get(w http.ResponseWriter, r *http.Request) {
	material, err := h.service.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, r, h.version, err)
		return
	}
	respond(w, r, http.StatusOK, h.version, material)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/vbpupil/measurement-converter/internal/application/dto"
	"github.com/vbpupil/measurement-converter/internal/application/port"
	"github.com/vbpupil/measurement-converter/internal/application/service"
)

// ConversionHandler serves /conversions.
type ConversionHandler struct {
	service *service.ConversionService
	logger  port.Logger
	version string
}

// NewConversionHandler creates a ConversionHandler.
func NewConversionHandler(svc *service.ConversionService, logger port.Logger, version string) *ConversionHandler {
	return &ConversionHandler{service: svc, logger: logger, version: version}
}

// Routes mounts the handler's endpoints.
func (h *ConversionHandler) Routes(r chi.Router) {
	r.Get("/", h.Query)
	r.Post("/", h.Create)
}

// Create converts the JSON body {"material": ..., "volume_m3": ...}.
func (h *ConversionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ConversionRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.logger.WithContext(r.Context()).Debug("Malformed conversion body", "error", err)
		badRequest(w, r, h.version, "body", "must be a JSON object with material and volume_m3", nil)
		return
	}
	h.convert(w, r, req)
}

// Query converts ?material=...&volume_m3=... .
func (h *ConversionHandler) Query(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw := q.Get("volume_m3")
	volume, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		badRequest(w, r, h.version, "volume_m3", "must be a number", raw)
		return
	}
	h.convert(w, r, dto.ConversionRequest{
		Material: dto.MaterialName(q.Get("material")),
		VolumeM3: volume,
	})
}

func (h *ConversionHandler) convert(w http.ResponseWriter, r *http.Request, req dto.ConversionRequest) {
	resp, err := h.service.Convert(r.Context(), req)
	if err != nil {
		respondError(w, r, h.version, err)
		return
	}
	respond(w, r, http.StatusOK, h.version, resp)
}

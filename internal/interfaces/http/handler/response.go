// Package handler contains the HTTP handlers of the density API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/vbpupil/measurement-converter/internal/application/dto"
	"github.com/vbpupil/measurement-converter/internal/application/service"
	"github.com/vbpupil/measurement-converter/internal/domain/entity"
	"github.com/vbpupil/measurement-converter/internal/domain/repository"
	"github.com/vbpupil/measurement-converter/internal/domain/valueobject"
	"github.com/vbpupil/measurement-converter/pkg/logger"
)

// meta builds the response metadata for r.
func meta(r *http.Request, version string) *dto.ResponseMeta {
	return &dto.ResponseMeta{
		RequestID: logger.RequestIDFromContext(r.Context()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   version,
	}
}

// respond writes a success envelope with status.
func respond[T any](w http.ResponseWriter, r *http.Request, status int, version string, data T) {
	render.Status(r, status)
	render.JSON(w, r, dto.NewSuccessResponse(data).WithMeta(meta(r, version)))
}

// respondError maps err onto an HTTP status and error envelope.
func respondError(w http.ResponseWriter, r *http.Request, version string, err error) {
	status, body := errorResponse(err)
	render.Status(r, status)
	render.JSON(w, r, body.WithMeta(meta(r, version)))
}

func errorResponse(err error) (int, dto.APIResponse[any]) {
	var validation *service.ValidationFailedError
	if errors.As(err, &validation) {
		return http.StatusBadRequest, dto.NewValidationErrorResponse[any](validation.Errors)
	}

	switch {
	case errors.Is(err, entity.ErrUnsupportedMaterial):
		return http.StatusUnprocessableEntity, dto.NewErrorResponse[any](dto.CodeUnsupportedMaterial, err.Error())
	case errors.Is(err, entity.ErrEmptyMaterial):
		return http.StatusBadRequest, dto.NewErrorResponse[any](dto.CodeEmptyMaterial, err.Error())
	case errors.Is(err, entity.ErrNoMaterialSelected):
		return http.StatusBadRequest, dto.NewErrorResponse[any](dto.CodeNoMaterialSelected, err.Error())
	case errors.Is(err, valueobject.ErrInvalidDensity):
		return http.StatusBadRequest, dto.NewErrorResponse[any](dto.CodeInvalidDensity, err.Error())
	case errors.Is(err, valueobject.ErrInvalidVolume):
		return http.StatusBadRequest, dto.NewErrorResponse[any](dto.CodeInvalidVolume, err.Error())
	case errors.Is(err, repository.ErrMaterialNotFound):
		return http.StatusNotFound, dto.NewErrorResponse[any](dto.CodeNotFound, err.Error())
	case errors.Is(err, repository.ErrInvalidInput):
		return http.StatusBadRequest, dto.NewErrorResponse[any](dto.CodeValidationError, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, dto.NewErrorResponse[any](dto.CodeTimeout, "The request timed out")
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, dto.NewErrorResponse[any](dto.CodeRequestCanceled, "The request was canceled")
	}
	return http.StatusInternalServerError, dto.NewErrorResponse[any](dto.CodeInternalError, "An unexpected error occurred")
}

// badRequest reports a single malformed field.
func badRequest(w http.ResponseWriter, r *http.Request, version, field, message string, value any) {
	respondError(w, r, version, &service.ValidationFailedError{Errors: []dto.ValidationError{{
		Field:   field,
		Message: message,
		Value:   value,
	}}})
}

// Package service implements the application use cases on top of the domain.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vbpupil/measurement-converter/internal/application/dto"
	"github.com/vbpupil/measurement-converter/internal/application/port"
	"github.com/vbpupil/measurement-converter/internal/domain/entity"
	"github.com/vbpupil/measurement-converter/internal/domain/repository"
	"github.com/vbpupil/measurement-converter/internal/domain/valueobject"
)

// Metric names recorded by ConversionService.
const (
	MetricConversionsTotal   = "conversions_total"
	MetricConversionDuration = "conversion_duration_seconds"
)

// ErrValidation is matched by every *ValidationFailedError.
var ErrValidation = errors.New("request validation failed")

// ValidationFailedError carries field-level validation failures.
type ValidationFailedError struct {
	Errors []dto.ValidationError
}

// Error implements error.
func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%s: %d field(s) invalid", ErrValidation, len(e.Errors))
}

// Is reports whether target is ErrValidation.
func (e *ValidationFailedError) Is(target error) bool {
	return target == ErrValidation
}

// ConversionService converts volumes of material into weights.
type ConversionService struct {
	repo    repository.MaterialRepository
	logger  port.Logger
	metrics port.Metrics
	strict  bool
}

// NewConversionService creates a ConversionService.
//
// Parameters:
//   - repo: source of material densities
//   - logger: structured logger
//   - metrics: metrics sink (nil disables metrics)
//   - strict: reject empty material identifiers instead of ignoring them
//
// Returns:
//   - *ConversionService: the service
func NewConversionService(repo repository.MaterialRepository, logger port.Logger, metrics port.Metrics, strict bool) *ConversionService {
	if metrics == nil {
		metrics = port.NopMetrics{}
	}
	return &ConversionService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		strict:  strict,
	}
}

// Convert computes the weight for the requested material and volume.
//
// Parameters:
//   - ctx: request context
//   - req: material identifier and volume in m³
//
// Returns:
//   - *dto.ConversionResponse: the weight breakdown
//   - error: *ValidationFailedError, entity.ErrUnsupportedMaterial,
//     entity.ErrEmptyMaterial, entity.ErrNoMaterialSelected,
//     valueobject.ErrInvalidDensity, valueobject.ErrInvalidVolume or the
//     context's error
func (s *ConversionService) Convert(ctx context.Context, req dto.ConversionRequest) (*dto.ConversionResponse, error) {
	start := time.Now()
	log := s.logger.WithContext(ctx).With("material", req.Material.String(), "volume_m3", req.VolumeM3)

	resp, err := s.convert(ctx, req)

	outcome := outcomeOf(err)
	label := "invalid"
	if resp != nil {
		label = resp.Material
	}
	s.metrics.Counter(MetricConversionsTotal, 1, map[string]string{"material": label, "outcome": outcome})
	s.metrics.Timing(MetricConversionDuration, time.Since(start), map[string]string{"outcome": outcome})

	if err != nil {
		log.Warn("Conversion rejected", "outcome", outcome, "error", err)
		return nil, err
	}
	log.Debug("Conversion completed", "tonne", resp.Weight.Tonne)
	return resp, nil
}

func (s *ConversionService) convert(ctx context.Context, req dto.ConversionRequest) (*dto.ConversionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if errs := req.Validate(); len(errs) > 0 {
		return nil, &ValidationFailedError{Errors: errs}
	}

	opts := []entity.ConverterOption{
		entity.WithStrictMaterial(s.strict),
		entity.WithDensitySource(s.repo),
	}
	volume := valueobject.CubicMeters(req.VolumeM3)

	var (
		converter *entity.Converter
		err       error
	)
	if req.Material.IsNumeric() {
		converter, err = entity.NewConverterWithDensity(req.Material.Density(), volume, opts...)
	} else {
		converter, err = entity.NewConverter(req.Material.String(), volume, opts...)
	}
	if err != nil {
		return nil, err
	}

	weight, err := converter.Value()
	if err != nil {
		return nil, err
	}
	density, err := converter.Density()
	if err != nil {
		return nil, err
	}

	return &dto.ConversionResponse{
		Material:    converter.Material(),
		DensityKgM3: density.KilogramsPerCubicMeter(),
		VolumeM3:    req.VolumeM3,
		Weight:      weight,
	}, nil
}

// outcomeOf classifies err for metric labels.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, entity.ErrUnsupportedMaterial):
		return "unsupported_material"
	case errors.Is(err, entity.ErrEmptyMaterial), errors.Is(err, entity.ErrNoMaterialSelected):
		return "no_material"
	case errors.Is(err, ErrValidation),
		errors.Is(err, valueobject.ErrInvalidDensity),
		errors.Is(err, valueobject.ErrInvalidVolume):
		return "invalid_input"
	}
	return "error"
}

package service

import (
	"context"

	"github.com/vbpupil/measurement-converter/internal/application/dto"
	"github.com/vbpupil/measurement-converter/internal/application/port"
	"github.com/vbpupil/measurement-converter/internal/domain/repository"
)

// MaterialService exposes the density table for browsing.
type MaterialService struct {
	repo   repository.MaterialRepository
	logger port.Logger
}

// NewMaterialService creates a MaterialService.
func NewMaterialService(repo repository.MaterialRepository, logger port.Logger) *MaterialService {
	return &MaterialService{repo: repo, logger: logger}
}

// List returns one page of materials matching filter.
//
// Parameters:
//   - ctx: request context
//   - filter: search, density range, sort and paging criteria
//
// Returns:
//   - dto.Page[dto.MaterialResponse]: the page and total count
//   - error: repository.ErrInvalidInput for a malformed filter
func (s *MaterialService) List(ctx context.Context, filter repository.MaterialFilter) (dto.Page[dto.MaterialResponse], error) {
	materials, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return dto.Page[dto.MaterialResponse]{}, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return dto.Page[dto.MaterialResponse]{}, err
	}

	items := make([]dto.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		items = append(items, dto.NewMaterialResponse(m))
	}

	s.logger.WithContext(ctx).Debug("Materials listed", "returned", len(items), "total", total)

	return dto.NewPage(items, total, filter.Limit, filter.Offset), nil
}

// Get returns a single material by name (case-insensitive).
//
// Returns:
//   - dto.MaterialResponse: the material
//   - error: repository.ErrMaterialNotFound if it does not exist
func (s *MaterialService) Get(ctx context.Context, name string) (dto.MaterialResponse, error) {
	m, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return dto.MaterialResponse{}, err
	}
	return dto.NewMaterialResponse(m), nil
}

// Count returns the number of known materials.
func (s *MaterialService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, repository.MaterialFilter{})
}

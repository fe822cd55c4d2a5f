// Package memory provides in-memory implementations of repository interfaces.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vbpupil/measurement-converter/internal/domain/entity"
	"github.com/vbpupil/measurement-converter/internal/domain/repository"
	"github.com/vbpupil/measurement-converter/internal/domain/valueobject"
)

// MaterialRepository serves materials from a read-only density table.
type MaterialRepository struct {
	table *entity.DensityTable
}

var _ repository.MaterialRepository = (*MaterialRepository)(nil)

// NewMaterialRepository creates a repository over the given table.
// A nil table falls back to entity.DefaultDensityTable.
func NewMaterialRepository(table *entity.DensityTable) *MaterialRepository {
	if table == nil {
		table = entity.DefaultDensityTable()
	}
	return &MaterialRepository{table: table}
}

// Lookup implements entity.DensitySource.
func (r *MaterialRepository) Lookup(name string) (valueobject.Density, bool) {
	return r.table.Lookup(name)
}

// GetByName implements repository.MaterialRepository.
func (r *MaterialRepository) GetByName(ctx context.Context, name string) (*entity.Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := strings.ToLower(name)
	d, ok := r.table.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrMaterialNotFound, key)
	}
	return &entity.Material{Name: key, Density: d}, nil
}

// FindAll implements repository.MaterialRepository.
func (r *MaterialRepository) FindAll(ctx context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	matches, err := r.match(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := sortMaterials(matches, filter); err != nil {
		return nil, err
	}

	if filter.Offset >= len(matches) {
		return []*entity.Material{}, nil
	}
	matches = matches[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matches) {
		matches = matches[:filter.Limit]
	}
	return matches, nil
}

// Count implements repository.MaterialRepository.
func (r *MaterialRepository) Count(ctx context.Context, filter repository.MaterialFilter) (int64, error) {
	matches, err := r.match(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(matches)), nil
}

// ExistsByName implements repository.MaterialRepository.
func (r *MaterialRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok := r.table.Lookup(strings.ToLower(name))
	return ok, nil
}

// match applies the non-paging criteria of filter.
func (r *MaterialRepository) match(ctx context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must be non-negative", repository.ErrInvalidInput)
	}
	if filter.MinDensity != nil && filter.MaxDensity != nil && *filter.MinDensity > *filter.MaxDensity {
		return nil, fmt.Errorf("%w: min_density exceeds max_density", repository.ErrInvalidInput)
	}

	term := strings.ToLower(strings.TrimSpace(filter.SearchTerm))
	var matches []*entity.Material
	for _, m := range r.table.Materials() {
		kg := m.Density.KilogramsPerCubicMeter()
		if term != "" && !strings.Contains(m.Name, term) {
			continue
		}
		if filter.MinDensity != nil && kg < *filter.MinDensity {
			continue
		}
		if filter.MaxDensity != nil && kg > *filter.MaxDensity {
			continue
		}
		matches = append(matches, &m)
	}
	return matches, nil
}

// sortMaterials orders materials in place. Name order is the table default.
func sortMaterials(materials []*entity.Material, filter repository.MaterialFilter) error {
	desc := false
	switch strings.ToLower(filter.SortOrder) {
	case "", "asc":
	case "desc":
		desc = true
	default:
		return fmt.Errorf("%w: sort_order %q", repository.ErrInvalidInput, filter.SortOrder)
	}

	var less func(a, b *entity.Material) bool
	switch strings.ToLower(filter.SortBy) {
	case "", repository.SortByName:
		less = func(a, b *entity.Material) bool { return a.Name < b.Name }
	case repository.SortByDensity:
		less = func(a, b *entity.Material) bool {
			if a.Density == b.Density {
				return a.Name < b.Name
			}
			return a.Density < b.Density
		}
	default:
		return fmt.Errorf("%w: sort_by %q", repository.ErrInvalidInput, filter.SortBy)
	}

	sort.SliceStable(materials, func(i, j int) bool {
		if desc {
			return less(materials[j], materials[i])
		}
		return less(materials[i], materials[j])
	})
	return nil
}

// Package repository contains the repository interfaces (ports) for data access.
package repository

import (
	"context"

	"github.com/vbpupil/measurement-converter/internal/domain/entity"
)

// Sort fields accepted by MaterialFilter.SortBy.
const (
	SortByName    = "name"
	SortByDensity = "density"
)

// MaterialFilter contains criteria for filtering materials.
type MaterialFilter struct {
	// SearchTerm matches materials whose name contains it (case-insensitive).
	SearchTerm string

	// MinDensity filters materials with density >= this value (kg/m³).
	MinDensity *float64

	// MaxDensity filters materials with density <= this value (kg/m³).
	MaxDensity *float64

	// Limit specifies the maximum number of results. Zero means no limit.
	Limit int

	// Offset specifies the starting position for pagination
	Offset int

	// SortBy specifies the field to sort by ("name" or "density")
	SortBy string

	// SortOrder specifies ascending ("asc") or descending ("desc")
	SortOrder string
}

// MaterialRepository defines the interface for material lookups.
// It also acts as the density source handed to converters.
//
// Example usage:
//
//	repo := memory.NewMaterialRepository(entity.DefaultDensityTable())
//	material, err := repo.GetByName(ctx, "water")
type MaterialRepository interface {
	entity.DensitySource

	// GetByName retrieves a material by its name (case-insensitive).
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - name: The material name
	//
	// Returns:
	//   - *entity.Material: The retrieved material
	//   - error: ErrMaterialNotFound if the material doesn't exist
	GetByName(ctx context.Context, name string) (*entity.Material, error)

	// FindAll retrieves materials matching the given filter criteria.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - filter: Criteria to filter materials
	//
	// Returns:
	//   - []*entity.Material: List of matching materials
	//   - error: ErrInvalidInput for a malformed filter
	FindAll(ctx context.Context, filter MaterialFilter) ([]*entity.Material, error)

	// Count returns the total number of materials matching the filter,
	// ignoring Limit and Offset.
	Count(ctx context.Context, filter MaterialFilter) (int64, error)

	// ExistsByName checks if a material with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)
}

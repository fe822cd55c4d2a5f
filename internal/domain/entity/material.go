// Package entity contains the core business entities of the domain layer.
package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vbpupil/measurement-converter/internal/domain/valueobject"
)

// CustomMaterial is the reserved material name selected when a density is
// supplied directly instead of a named material.
const CustomMaterial = "custom"

// Material errors define domain-specific error conditions for materials.
var (
	ErrUnsupportedMaterial = errors.New("unsupported material")
	ErrEmptyMaterial       = errors.New("material identifier cannot be empty")
	ErrNoMaterialSelected  = errors.New("no material selected")
	ErrNilVolume           = errors.New("volume cannot be nil")
)

// UnsupportedMaterialError reports a material name missing from the density table.
// It matches ErrUnsupportedMaterial with errors.Is.
type UnsupportedMaterialError struct {
	// Name is the lowercased name that was looked up.
	Name string
}

// Error implements error.
func (e *UnsupportedMaterialError) Error() string {
	return fmt.Sprintf("unsupported material: %s", e.Name)
}

// Is reports whether target is ErrUnsupportedMaterial.
func (e *UnsupportedMaterialError) Is(target error) bool {
	return target == ErrUnsupportedMaterial
}

// Material is a named substance with a known density.
type Material struct {
	// Name is the lowercase lookup key.
	Name string `json:"name"`

	// Density in kilograms per cubic meter.
	Density valueobject.Density `json:"density_kg_m3"`
}

// DensitySource resolves a lowercase material name to its density.
type DensitySource interface {
	Lookup(name string) (valueobject.Density, bool)
}

// DensityTable is a read-only mapping from material name to density.
type DensityTable struct {
	densities map[string]valueobject.Density
}

// NewDensityTable builds a table from kg/m³ values. Names are lowercased.
//
// Parameters:
//   - densities: material name to density in kg/m³
//
// Returns:
//   - *DensityTable: the table
//   - error: ErrInvalidDensity if any value is not positive, or
//     ErrEmptyMaterial for a blank name
func NewDensityTable(densities map[string]float64) (*DensityTable, error) {
	table := make(map[string]valueobject.Density, len(densities))
	for name, value := range densities {
		key := strings.ToLower(name)
		if strings.TrimSpace(key) == "" {
			return nil, ErrEmptyMaterial
		}
		d, err := valueobject.NewDensity(value)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		table[key] = d
	}
	return &DensityTable{densities: table}, nil
}

var defaultTable = mustDefaultTable()

func mustDefaultTable() *DensityTable {
	t, err := NewDensityTable(defaultDensities)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultDensityTable returns the shared built-in table.
// It is safe for concurrent use since it is never modified.
func DefaultDensityTable() *DensityTable {
	return defaultTable
}

// Lookup implements DensitySource.
func (t *DensityTable) Lookup(name string) (valueobject.Density, bool) {
	d, ok := t.densities[name]
	return d, ok
}

// Len returns the number of materials in the table.
func (t *DensityTable) Len() int {
	return len(t.densities)
}

// Names returns every material name in ascending order.
func (t *DensityTable) Names() []string {
	names := make([]string, 0, len(t.densities))
	for name := range t.densities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Materials returns every material sorted by name.
func (t *DensityTable) Materials() []Material {
	names := t.Names()
	materials := make([]Material, 0, len(names))
	for _, name := range names {
		materials = append(materials, Material{Name: name, Density: t.densities[name]})
	}
	return materials
}

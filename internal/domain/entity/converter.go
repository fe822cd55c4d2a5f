package entity

import (
	"math"
	"strconv"
	"strings"

	"github.com/vbpupil/measurement-converter/internal/domain/valueobject"
)

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithStrictMaterial makes an empty material identifier an error (ErrEmptyMaterial)
// instead of a silent no-op.
func WithStrictMaterial(strict bool) ConverterOption {
	return func(c *Converter) {
		c.strict = strict
	}
}

// WithDensitySource replaces the built-in density table.
func WithDensitySource(src DensitySource) ConverterOption {
	return func(c *Converter) {
		if src != nil {
			c.source = src
		}
	}
}

// Converter turns a volume of a material into its weight.
//
// The density table is shared and read-only; a directly supplied density is
// kept on the instance as an override selected under CustomMaterial.
// A Converter is not safe for concurrent use.
//
// Example usage:
//
//	c, err := entity.NewConverter("water", valueobject.CubicMeters(2))
//	w, err := c.Value() // 2 t, 2.20462 US t, 1.968414 imp t
type Converter struct {
	source   DensitySource
	strict   bool
	material string
	custom   *valueobject.Density
	volume   valueobject.Volume
}

// NewConverter creates a Converter and selects the given material.
//
// Parameters:
//   - material: a material name (case-insensitive) or a numeric density in kg/m³
//   - volume: the volume to weigh, read on every call to Value
//   - opts: optional configuration
//
// Returns:
//   - *Converter: the converter
//   - error: ErrNilVolume, ErrUnsupportedMaterial, ErrEmptyMaterial (strict only)
//     or valueobject.ErrInvalidDensity
func NewConverter(material string, volume valueobject.Volume, opts ...ConverterOption) (*Converter, error) {
	c, err := newConverter(volume, opts)
	if err != nil {
		return nil, err
	}
	if _, err := c.SetMaterial(material); err != nil {
		return nil, err
	}
	return c, nil
}

// NewConverterWithDensity creates a Converter using a custom density.
//
// Parameters:
//   - kgPerCubicMeter: density in kg/m³
//   - volume: the volume to weigh
//   - opts: optional configuration
//
// Returns:
//   - *Converter: the converter with CustomMaterial selected
//   - error: ErrNilVolume or valueobject.ErrInvalidDensity
func NewConverterWithDensity(kgPerCubicMeter float64, volume valueobject.Volume, opts ...ConverterOption) (*Converter, error) {
	c, err := newConverter(volume, opts)
	if err != nil {
		return nil, err
	}
	if err := c.SetCustomDensity(kgPerCubicMeter); err != nil {
		return nil, err
	}
	return c, nil
}

func newConverter(volume valueobject.Volume, opts []ConverterOption) (*Converter, error) {
	if volume == nil {
		return nil, ErrNilVolume
	}
	c := &Converter{
		source: DefaultDensityTable(),
		volume: volume,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetMaterial selects the material used by subsequent calculations.
//
// A numeric identifier is treated as a custom density. Any other identifier
// is lowercased and looked up in the density table. An empty identifier
// leaves the selection unchanged, or fails with ErrEmptyMaterial in strict mode.
//
// Parameters:
//   - id: material name or numeric density
//
// Returns:
//   - bool: true if a material was selected, false on a no-op
//   - error: *UnsupportedMaterialError, ErrEmptyMaterial or valueobject.ErrInvalidDensity
func (c *Converter) SetMaterial(id string) (bool, error) {
	if id == "" {
		if c.strict {
			return false, ErrEmptyMaterial
		}
		return false, nil
	}

	if value, ok := parseNumeric(id); ok {
		if err := c.SetCustomDensity(value); err != nil {
			return false, err
		}
		return true, nil
	}

	name := strings.ToLower(id)
	if name == CustomMaterial && c.custom != nil {
		c.material = name
		return true, nil
	}
	if _, ok := c.source.Lookup(name); !ok {
		return false, &UnsupportedMaterialError{Name: name}
	}
	c.material = name
	return true, nil
}

// SetCustomDensity overwrites the custom density and selects CustomMaterial.
func (c *Converter) SetCustomDensity(kgPerCubicMeter float64) error {
	d, err := valueobject.NewDensity(kgPerCubicMeter)
	if err != nil {
		return err
	}
	c.custom = &d
	c.material = CustomMaterial
	return nil
}

// Material returns the selected material name, or "" if none is selected.
func (c *Converter) Material() string {
	return c.material
}

// Volume returns the volume collaborator.
func (c *Converter) Volume() valueobject.Volume {
	return c.volume
}

// Density returns the density of the selected material.
func (c *Converter) Density() (valueobject.Density, error) {
	if c.material == "" {
		return 0, ErrNoMaterialSelected
	}
	if c.material == CustomMaterial && c.custom != nil {
		return *c.custom, nil
	}
	d, ok := c.source.Lookup(c.material)
	if !ok {
		return 0, &UnsupportedMaterialError{Name: c.material}
	}
	return d, nil
}

// Value calculates the weight of the volume for the selected material.
// It has no side effects.
//
// Returns:
//   - valueobject.Weight: the weight in tonnes, US tons and imperial tons
//   - error: ErrNoMaterialSelected or valueobject.ErrInvalidVolume
func (c *Converter) Value() (valueobject.Weight, error) {
	density, err := c.Density()
	if err != nil {
		return valueobject.Weight{}, err
	}

	m3 := c.volume.CubicMeters()
	if err := valueobject.ValidateVolume(m3); err != nil {
		return valueobject.Weight{}, err
	}

	return valueobject.NewWeightFromTonnes(density.TonnesPerCubicMeter() * m3), nil
}

// parseNumeric reports whether s is a plain decimal number, allowing
// surrounding whitespace and exponent notation.
func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

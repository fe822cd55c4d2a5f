package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vbpupil/measurement-converter/internal/domain/entity"
	"github.com/vbpupil/measurement-converter/internal/domain/valueobject"
)

// MaterialIdentifier is either a material name or a numeric density.
// In JSON it accepts a string ("water") or a number (2500).
type MaterialIdentifier struct {
	name    string
	density float64
	numeric bool
}

// MaterialName returns an identifier for a named material.
func MaterialName(name string) MaterialIdentifier {
	return MaterialIdentifier{name: name}
}

// MaterialDensity returns an identifier for a custom density in kg/m³.
func MaterialDensity(kgPerCubicMeter float64) MaterialIdentifier {
	return MaterialIdentifier{density: kgPerCubicMeter, numeric: true}
}

// IsNumeric reports whether the identifier carries a density.
func (m MaterialIdentifier) IsNumeric() bool {
	return m.numeric
}

// Density returns the custom density. Only meaningful when IsNumeric is true.
func (m MaterialIdentifier) Density() float64 {
	return m.density
}

// String returns the identifier as text, as accepted by Converter.SetMaterial.
func (m MaterialIdentifier) String() string {
	if m.numeric {
		return strconv.FormatFloat(m.density, 'g', -1, 64)
	}
	return m.name
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *MaterialIdentifier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*m = MaterialIdentifier{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*m = MaterialName(name)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("material must be a string or a number: %w", err)
	}
	v, err := n.Float64()
	if err != nil {
		return fmt.Errorf("material must be a string or a number: %w", err)
	}
	*m = MaterialDensity(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (m MaterialIdentifier) MarshalJSON() ([]byte, error) {
	if m.numeric {
		return json.Marshal(m.density)
	}
	return json.Marshal(m.name)
}

// ConversionRequest asks for the weight of a volume of material.
type ConversionRequest struct {
	// Material is a material name or a custom density in kg/m³.
	Material MaterialIdentifier `json:"material"`

	// VolumeM3 is the volume in cubic meters.
	VolumeM3 float64 `json:"volume_m3"`
}

// Validate checks the request for field-level errors.
//
// Returns:
//   - []ValidationError: the failed fields, or nil if the request is valid
func (r ConversionRequest) Validate() []ValidationError {
	var errs []ValidationError
	if err := valueobject.ValidateVolume(r.VolumeM3); err != nil {
		errs = append(errs, ValidationError{
			Field:   "volume_m3",
			Message: "must be a non-negative finite number",
		})
	}
	return errs
}

// ConversionResponse is the weight breakdown for a conversion.
type ConversionResponse struct {
	// Material is the selected material name ("custom" for a direct density).
	Material string `json:"material"`

	// DensityKgM3 is the density used, in kg/m³.
	DensityKgM3 float64 `json:"density_kg_m3"`

	// VolumeM3 is the converted volume in cubic meters.
	VolumeM3 float64 `json:"volume_m3"`

	// Weight is the result in tonnes, US tons and imperial tons.
	Weight valueobject.Weight `json:"weight"`
}

// MaterialResponse describes one material.
type MaterialResponse struct {
	// Name is the lookup key.
	Name string `json:"name"`

	// DensityKgM3 is the density in kg/m³.
	DensityKgM3 float64 `json:"density_kg_m3"`
}

// NewMaterialResponse maps an entity to its response.
func NewMaterialResponse(m *entity.Material) MaterialResponse {
	return MaterialResponse{
		Name:        m.Name,
		DensityKgM3: m.Density.KilogramsPerCubicMeter(),
	}
}

package valueobject

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidVolume is returned when a volume is negative or not a finite number.
var ErrInvalidVolume = errors.New("volume must be a non-negative finite number")

// Volume is anything that can report its size in cubic meters.
// Unit normalization is the implementation's concern; consumers only read
// the value in m³.
type Volume interface {
	CubicMeters() float64
}

// CubicMeters is a volume already expressed in m³.
type CubicMeters float64

// NewCubicMeters creates a validated CubicMeters value.
//
// Parameters:
//   - m3: volume in cubic meters
//
// Returns:
//   - CubicMeters: the validated volume
//   - error: ErrInvalidVolume if the value is negative, NaN or infinite
func NewCubicMeters(m3 float64) (CubicMeters, error) {
	if err := ValidateVolume(m3); err != nil {
		return 0, err
	}
	return CubicMeters(m3), nil
}

// CubicMeters implements Volume.
func (c CubicMeters) CubicMeters() float64 {
	return float64(c)
}

// String returns a formatted representation (e.g., "2 m³").
func (c CubicMeters) String() string {
	return fmt.Sprintf("%g m³", float64(c))
}

// ValidateVolume checks that m3 is usable in a weight calculation.
func ValidateVolume(m3 float64) error {
	if math.IsNaN(m3) || math.IsInf(m3, 0) || m3 < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidVolume, m3)
	}
	return nil
}

// Dimensions represents a rectangular box measured in meters.
type Dimensions struct {
	// Length in meters.
	Length float64 `json:"length"`

	// Width in meters.
	Width float64 `json:"width"`

	// Height in meters.
	Height float64 `json:"height"`
}

// NewDimensions creates a new Dimensions value object.
//
// Parameters:
//   - length: Length in meters
//   - width: Width in meters
//   - height: Height in meters
//
// Returns:
//   - Dimensions: new Dimensions value object
func NewDimensions(length, width, height float64) Dimensions {
	return Dimensions{
		Length: length,
		Width:  width,
		Height: height,
	}
}

// CubicMeters implements Volume.
func (d Dimensions) CubicMeters() float64 {
	return d.Length * d.Width * d.Height
}

// IsEmpty checks if all dimensions are zero.
func (d Dimensions) IsEmpty() bool {
	return d.Length == 0 && d.Width == 0 && d.Height == 0
}

// String returns a formatted string representation (e.g., "2.0x1.0x0.5 m").
func (d Dimensions) String() string {
	return fmt.Sprintf("%.1fx%.1fx%.1f m", d.Length, d.Width, d.Height)
}

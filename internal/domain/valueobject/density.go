// Package valueobject contains value objects that represent concepts without identity.
// Value objects are immutable and compared by their attributes rather than identity.
// They encapsulate validation logic and ensure data integrity.
//
// Value Objects follow these principles:
//   - Immutability: Once created, they cannot be changed.
//   - Equality: Two value objects are equal if all their attributes are equal.
//   - Self-validation: They validate their own data upon creation.
//   - Side-effect free: Methods return new instances rather than modifying state
package valueobject

import (
	"errors"
	"fmt"
	"math"
)

// Density errors define domain-specific error conditions.
var (
	ErrInvalidDensity = errors.New("density must be a positive finite number")
)

// Density is a mass per unit volume expressed in kilograms per cubic meter.
type Density float64

// NewDensity creates a Density after validating it.
//
// Parameters:
//   - kgPerCubicMeter: density in kg/m³ (must be positive and finite)
//
// Returns:
//   - Density: the validated density
//   - error: ErrInvalidDensity if the value is zero, negative, NaN or infinite
func NewDensity(kgPerCubicMeter float64) (Density, error) {
	if math.IsNaN(kgPerCubicMeter) || math.IsInf(kgPerCubicMeter, 0) || kgPerCubicMeter <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDensity, kgPerCubicMeter)
	}
	return Density(kgPerCubicMeter), nil
}

// KilogramsPerCubicMeter returns the raw density value.
func (d Density) KilogramsPerCubicMeter() float64 {
	return float64(d)
}

// TonnesPerCubicMeter converts the density to metric tonnes per cubic meter.
func (d Density) TonnesPerCubicMeter() float64 {
	return float64(d) / 1000
}

// String returns the density with its unit (e.g., "1000 kg/m³").
func (d Density) String() string {
	return fmt.Sprintf("%g kg/m³", float64(d))
}

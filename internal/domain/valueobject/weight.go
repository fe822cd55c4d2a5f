package valueobject

import (
	"errors"
	"fmt"
)

// Conversion factors from metric tonnes.
const (
	USTonsPerTonne       = 1.10231
	ImperialTonsPerTonne = 0.984207
)

// WeightUnit names one of the units a Weight is reported in.
type WeightUnit string

// Supported weight units, matching the keys of Weight.AsMap.
const (
	UnitTonne       WeightUnit = "tonne"        // Metric ton, 1000 kg
	UnitUSTon       WeightUnit = "us_ton"       // Short ton, 2000 lb
	UnitImperialTon WeightUnit = "imperial_ton" // Long ton, 2240 lb
)

// ErrUnknownWeightUnit is returned when formatting with an unsupported unit.
var ErrUnknownWeightUnit = errors.New("unknown weight unit")

// Weight is a mass reported in metric tonnes, US tons and imperial tons.
//
// Example usage:
//
//	w := valueobject.NewWeightFromTonnes(2) // 2 t, 2.20462 US t, 1.968414 imp t
type Weight struct {
	// Tonne is the weight in metric tonnes.
	Tonne float64 `json:"tonne"`

	// USTon is the weight in US short tons.
	USTon float64 `json:"us_ton"`

	// ImperialTon is the weight in imperial long tons.
	ImperialTon float64 `json:"imperial_ton"`
}

// NewWeightFromTonnes derives the US and imperial figures from metric tonnes.
//
// Parameters:
//   - tonnes: weight in metric tonnes
//
// Returns:
//   - Weight: the weight in all three units
func NewWeightFromTonnes(tonnes float64) Weight {
	return Weight{
		Tonne:       tonnes,
		USTon:       tonnes * USTonsPerTonne,
		ImperialTon: tonnes * ImperialTonsPerTonne,
	}
}

// Add sums two weights and returns a new Weight.
func (w Weight) Add(other Weight) Weight {
	return NewWeightFromTonnes(w.Tonne + other.Tonne)
}

// IsZero checks if the weight is zero.
func (w Weight) IsZero() bool {
	return w.Tonne == 0
}

// In returns the weight in the requested unit.
//
// Parameters:
//   - unit: one of UnitTonne, UnitUSTon, UnitImperialTon
//
// Returns:
//   - float64: the weight in that unit
//   - error: ErrUnknownWeightUnit for any other unit
func (w Weight) In(unit WeightUnit) (float64, error) {
	switch unit {
	case UnitTonne:
		return w.Tonne, nil
	case UnitUSTon:
		return w.USTon, nil
	case UnitImperialTon:
		return w.ImperialTon, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeightUnit, unit)
}

// AsMap returns the weight keyed by unit name, with exactly three entries.
func (w Weight) AsMap() map[string]float64 {
	return map[string]float64{
		string(UnitTonne):       w.Tonne,
		string(UnitUSTon):       w.USTon,
		string(UnitImperialTon): w.ImperialTon,
	}
}

// Format returns the weight in one unit with its symbol (e.g., "2.2046 US t").
func (w Weight) Format(unit WeightUnit) (string, error) {
	v, err := w.In(unit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.4f %s", v, unitSymbol(unit)), nil
}

// String returns all three units (e.g., "2.0000 t / 2.2046 US t / 1.9684 imp t").
func (w Weight) String() string {
	return fmt.Sprintf("%.4f %s / %.4f %s / %.4f %s",
		w.Tonne, unitSymbol(UnitTonne),
		w.USTon, unitSymbol(UnitUSTon),
		w.ImperialTon, unitSymbol(UnitImperialTon),
	)
}

// unitSymbol returns the display symbol for a unit.
func unitSymbol(u WeightUnit) string {
	symbols := map[WeightUnit]string{
		UnitTonne:       "t",
		UnitUSTon:       "US t",
		UnitImperialTon: "imp t",
	}
	if s, ok := symbols[u]; ok {
		return s
	}
	return string(u)
}

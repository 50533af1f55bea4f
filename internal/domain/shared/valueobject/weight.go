package valueobject

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// WeightUnit represents a unit of weight measurement
type WeightUnit string

const (
	Gram     WeightUnit = "g"
	Kilogram WeightUnit = "kg"
	Pound    WeightUnit = "lb"
	Ounce    WeightUnit = "oz"
)

// gramsPerUnit maps each supported unit to its weight in grams.
var gramsPerUnit = map[WeightUnit]decimal.Decimal{
	Gram:     decimal.NewFromInt(1),
	Kilogram: decimal.NewFromInt(1000),
	Pound:    decimal.RequireFromString("453.59237"),
	Ounce:    decimal.RequireFromString("28.349523125"),
}

// ParseWeightUnit parses a unit string into a WeightUnit
func ParseWeightUnit(s string) (WeightUnit, error) {
	unit := WeightUnit(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := gramsPerUnit[unit]; !ok {
		return "", fmt.Errorf("unknown weight unit: %q", s)
	}
	return unit, nil
}

// IsValid returns true if the unit is supported
func (u WeightUnit) IsValid() bool {
	_, ok := gramsPerUnit[u]
	return ok
}

// Weight is a value object representing a physical weight
// It is immutable - all operations return new Weight instances
type Weight struct {
	value decimal.Decimal
	unit  WeightUnit
}

// NewWeight creates a new Weight with the given value and unit
func NewWeight(value decimal.Decimal, unit WeightUnit) (Weight, error) {
	if !unit.IsValid() {
		return Weight{}, fmt.Errorf("unknown weight unit: %q", unit)
	}
	if value.IsNegative() {
		return Weight{}, fmt.Errorf("weight cannot be negative: %s", value)
	}
	return Weight{value: value, unit: unit}, nil
}

// MustNewWeight creates a new Weight, panics on error
func MustNewWeight(value decimal.Decimal, unit WeightUnit) Weight {
	w, err := NewWeight(value, unit)
	if err != nil {
		panic(err)
	}
	return w
}

// RehydrateWeight rebuilds a Weight from stored fields without validation.
// Only persistence code should use this.
func RehydrateWeight(value decimal.Decimal, unit WeightUnit) Weight {
	return Weight{value: value, unit: unit}
}

// Value returns the numeric value in the weight's own unit
func (w Weight) Value() decimal.Decimal {
	return w.value
}

// Unit returns the unit of measurement
func (w Weight) Unit() WeightUnit {
	return w.unit
}

// IsZero returns true if the weight is zero
func (w Weight) IsZero() bool {
	return w.value.IsZero()
}

// Convert returns the weight expressed in the target unit
func (w Weight) Convert(target WeightUnit) (Weight, error) {
	if !target.IsValid() {
		return Weight{}, fmt.Errorf("unknown weight unit: %q", target)
	}
	if w.unit == target {
		return w, nil
	}
	grams := w.value.Mul(gramsPerUnit[w.unit])
	return Weight{value: grams.Div(gramsPerUnit[target]), unit: target}, nil
}

// Kilograms returns the weight value converted to kilograms
func (w Weight) Kilograms() decimal.Decimal {
	if w.unit == Kilogram {
		return w.value
	}
	return w.value.Mul(gramsPerUnit[w.unit]).Div(gramsPerUnit[Kilogram])
}

// String returns the string representation, e.g. "1.5 kg"
func (w Weight) String() string {
	return fmt.Sprintf("%s %s", w.value.String(), w.unit)
}

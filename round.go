package schoolmeal

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// round1 rounds the exact binary value of v to one decimal place, as strconv prints it.
func round1(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', 1, 64))
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := round1(v).Float64()
	return f
}

// Percent is a percentage rounded to one decimal place.
type Percent struct {
	value decimal.Decimal
}

// Ratio returns observed/recommended as a percentage rounded to one decimal.
func Ratio(observed, recommended float64) Percent {
	return Percent{value: round1(observed / recommended * 100)}
}

// Float64 returns the percentage as a number, 50 for "50.0%".
func (p Percent) Float64() float64 {
	f, _ := p.value.Float64()
	return f
}

// String formats the percentage with one decimal and a trailing "%".
func (p Percent) String() string { return p.value.StringFixed(1) + "%" }

// MarshalText encodes the percentage in its String form.
func (p Percent) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

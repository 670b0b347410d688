package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Unit names the scale a payment channel reports amounts in.
type Unit string

const (
	UnitMajor Unit = "major"
	UnitMinor Unit = "minor"

	Places = 2
)

var minorPerMajor = decimal.NewFromInt(100)

// ParseUnit falls back to major for anything it does not recognize.
func ParseUnit(s string) Unit {
	if Unit(s) == UnitMinor {
		return UnitMinor
	}

	return UnitMajor
}

// Normalize converts an amount reported in unit to major units rounded to cents.
func Normalize(amount decimal.Decimal, unit Unit) decimal.Decimal {
	if unit == UnitMinor {
		return FromMinor(amount)
	}

	return amount.Round(Places)
}

func FromMinor(minor decimal.Decimal) decimal.Decimal {
	return minor.Div(minorPerMajor).Round(Places)
}

// WithinTolerance reports |claimed - expected| <= tolerance.
func WithinTolerance(claimed, expected, tolerance decimal.Decimal) bool {
	return claimed.Sub(expected).Abs().LessThanOrEqual(tolerance)
}

func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return d, nil
}

// Format renders an amount with a currency prefix and two decimals.
func Format(currency string, amount decimal.Decimal) string {
	return currency + " " + amount.StringFixed(Places)
}

package money

import (
	"errors"
	"fmt"
	"log"
	"math"
)

// Money is an amount in minor currency units (cents). All arithmetic in the
// ordering core happens on this type; floating-point dollars exist only at
// the JSON ingestion and presentation boundaries.
type Money int64

// ErrInvalidPrice marks a price component that is not a finite number.
var ErrInvalidPrice = errors.New("invalid price: not a finite amount")

// FromDollars converts a float dollar amount into minor units, rounding to
// the nearest cent. NaN, infinities and amounts outside the int64 range are
// rejected so a bad value is caught at the ingestion boundary instead of
// deep inside a total.
func FromDollars(d float64) (Money, error) {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, ErrInvalidPrice
	}
	cents := math.Round(d * 100)
	if cents > math.MaxInt64 || cents < math.MinInt64 {
		return 0, ErrInvalidPrice
	}
	return Money(cents), nil
}

// LenientFromDollars substitutes 0 for an invalid amount and logs a warning,
// so a single bad component never poisons a whole order total.
func LenientFromDollars(d float64, what string) Money {
	m, err := FromDollars(d)
	if err != nil {
		log.Printf("invalid price %v for %s, using 0", d, what)
		return 0
	}
	return m
}

// Dollars returns the float dollar value. Presentation use only.
func (m Money) Dollars() float64 {
	return float64(m) / 100
}

// String formats the amount as a two-decimal string, e.g. "12.34".
func (m Money) String() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// LineTotal computes (base + optionDelta + sum(modifierDeltas)) * quantity.
// A non-positive quantity contributes nothing.
func LineTotal(base, optionDelta Money, modifierDeltas []Money, quantity int) Money {
	if quantity <= 0 {
		return 0
	}
	unit := base + optionDelta
	for _, d := range modifierDeltas {
		unit += d
	}
	return unit * Money(quantity)
}

// Percent returns pct% of base, rounded half up.
func Percent(base Money, pct int64) Money {
	if base <= 0 || pct <= 0 {
		return 0
	}
	return Money((int64(base)*pct + 50) / 100)
}

// Taxes returns the tax on subtotal at the given rate in basis points
// (500 = 5%), rounded half up.
func Taxes(subtotal Money, rateBasisPoints int64) Money {
	if subtotal <= 0 || rateBasisPoints <= 0 {
		return 0
	}
	return Money((int64(subtotal)*rateBasisPoints + 5000) / 10000)
}

// GrandTotal is the plain sum of the order-level components.
func GrandTotal(subtotal, deliveryFee, taxes, tip Money) Money {
	return subtotal + deliveryFee + taxes + tip
}

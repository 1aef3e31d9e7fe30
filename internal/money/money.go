// Package money provides exact minor-unit currency arithmetic.
//
// All balance and settlement math in this codebase runs on integer cents.
// Floats appear only at the JSON boundary, where amounts are two-decimal
// currency numbers; conversions in both directions round half-up so the
// round trip is lossless to two decimal places.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned when an amount cannot be parsed or is not a
// positive value where a positive value is required.
var ErrInvalidAmount = errors.New("invalid amount")

// Cents is a currency amount in integer minor units. It may be negative when
// representing a balance.
type Cents int64

// FromFloat converts a two-decimal currency number (as received on the JSON
// boundary) to cents, rounding half-up at the third decimal.
func FromFloat(v float64) Cents {
	if v < 0 {
		return -FromFloat(-v)
	}
	return Cents(math.Floor(v*100 + 0.5))
}

// PositiveFromFloat converts a boundary amount to cents and rejects
// non-positive values. Expense and settlement amounts must be positive.
func PositiveFromFloat(v float64) (Cents, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	c := FromFloat(v)
	if c <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, v)
	}
	return c, nil
}

// Float returns the amount as a two-decimal currency number for serialization.
func (c Cents) Float() float64 {
	return float64(c) / 100.0
}

// Abs returns the magnitude of the amount.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// String formats the amount as a plain decimal, e.g. "12.34" or "-0.05".
func (c Cents) String() string {
	sign := ""
	v := c
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Parse converts a decimal string to cents. Both dot and comma decimal
// separators are accepted; anything past the second decimal digit is rounded
// half-up. Negative values and signs are rejected, as are empty or malformed
// inputs.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxWhole = math.MaxInt64 / 100
	if iv > maxWhole {
		return 0, ErrInvalidAmount
	}

	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}
	return Cents(iv*100 + frac), nil
}

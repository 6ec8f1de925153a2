package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrInvalidPrice = errors.New("invalid price")
)

// ValidatePrice rejects NaN, infinities and negative values. Prices are
// whole-ish tenge amounts, so anything finite and non-negative passes.
func ValidatePrice(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrInvalidPrice
	}
	if v < 0 {
		return fmt.Errorf("%w: negative", ErrInvalidPrice)
	}
	return nil
}

// CoercePrice turns an untrusted numeric into a usable price, falling back
// to zero on anything non-finite or negative.
func CoercePrice(v float64) float64 {
	if ValidatePrice(v) != nil {
		return 0
	}
	return v
}

// FormatTenge renders an amount with thousands separators, e.g. "12 500".
// The currency suffix is left to the caller (reports use "KZT", the
// frontend renders the tenge sign itself).
func FormatTenge(v float64) string {
	neg := v < 0
	whole := strconv.FormatFloat(math.Abs(math.Round(v)), 'f', 0, 64)

	var out []byte
	for i, c := range []byte(whole) {
		if i > 0 && (len(whole)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

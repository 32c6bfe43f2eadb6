// Package resolve decodes four band colors into a resistance value using
// the standard 4-band color code.
package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// Decoding errors. Each maps to one precondition of the color code.
var (
	ErrWrongBandCount         = errors.New("expected 4 color bands")
	ErrInvalidDigitColor      = errors.New("invalid digit color")
	ErrInvalidMultiplierColor = errors.New("invalid multiplier color")
)

// digitValues maps colors of the first two bands to significant digits.
// Both spellings of grey are accepted.
var digitValues = map[string]int{
	"black":  0,
	"brown":  1,
	"red":    2,
	"orange": 3,
	"yellow": 4,
	"green":  5,
	"blue":   6,
	"violet": 7,
	"grey":   8,
	"gray":   8,
	"white":  9,
}

// multiplierValues maps third-band colors to their power-of-ten factor.
var multiplierValues = map[string]float64{
	"black":  1,
	"brown":  10,
	"red":    100,
	"orange": 1_000,
	"yellow": 10_000,
	"green":  100_000,
	"blue":   1_000_000,
	"violet": 10_000_000,
	"grey":   100_000_000,
	"gray":   100_000_000,
	"white":  1_000_000_000,
	"gold":   0.1,
	"silver": 0.01,
}

// Resolve decodes four band colors into a resistance in ohms. The first two
// bands are significant digits, the third the multiplier; the fourth is the
// tolerance band and does not contribute to the value. Colors are
// normalized for case and surrounding whitespace before lookup.
func Resolve(bandColors []string) (float64, error) {
	if len(bandColors) != 4 {
		return 0, fmt.Errorf("got %d: %w", len(bandColors), ErrWrongBandCount)
	}

	norm := make([]string, 4)
	for i, c := range bandColors {
		norm[i] = strings.ToLower(strings.TrimSpace(c))
	}

	d1, ok1 := digitValues[norm[0]]
	d2, ok2 := digitValues[norm[1]]
	if !ok1 || !ok2 {
		return 0, fmt.Errorf("%q, %q: %w", norm[0], norm[1], ErrInvalidDigitColor)
	}

	mult, ok := multiplierValues[norm[2]]
	if !ok {
		return 0, fmt.Errorf("%q: %w", norm[2], ErrInvalidMultiplierColor)
	}

	return float64(10*d1+d2) * mult, nil
}

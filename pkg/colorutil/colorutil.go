// Package colorutil provides shared color utilities for the resistor reader.
package colorutil

import (
	"image/color"
	"math"
)

// Common overlay colors used by the debug snapshot renderers.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Blue  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
)

// RGBToHSV converts RGB (0-255) to HSV (OpenCV convention: H 0-180, S 0-255, V 0-255).
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC * 255.0 // V in 0-255

	if maxC == 0 {
		s = 0
	} else {
		s = (diff / maxC) * 255.0 // S in 0-255
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	h = h / 2 // Convert to OpenCV's 0-180 range

	return h, s, v
}

// HueDistance returns the circular distance between two hues on the
// OpenCV 0-180 scale.
func HueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 90 {
		d = 180 - d
	}
	return d
}

// D65 reference white, as used by OpenCV's RGB-to-Lab conversion.
const (
	xn = 0.950456
	zn = 1.088754
)

// RGBToLab converts RGB (0-255) to CIE Lab in OpenCV's 8-bit convention:
// L scaled to 0-255, a and b offset by 128. Downstream color distances were
// tuned against OpenCV output, so the scaling must match it exactly.
func RGBToLab(r, g, b float64) (lch, ach, bch float64) {
	rl := srgbToLinear(r / 255.0)
	gl := srgbToLinear(g / 255.0)
	bl := srgbToLinear(b / 255.0)

	x := (0.412453*rl + 0.357580*gl + 0.180423*bl) / xn
	y := 0.212671*rl + 0.715160*gl + 0.072169*bl
	z := (0.019334*rl + 0.119193*gl + 0.950227*bl) / zn

	fy := labF(y)

	var l float64
	if y > 0.008856 {
		l = 116*fy - 16
	} else {
		l = 903.3 * y
	}

	lch = clamp255(l * 255.0 / 100.0)
	ach = clamp255(500*(labF(x)-fy) + 128)
	bch = clamp255(200*(fy-labF(z)) + 128)
	return lch, ach, bch
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// LabDistance returns the Euclidean distance between two Lab triples.
func LabDistance(a, b [3]float64) float64 {
	d0 := a[0] - b[0]
	d1 := a[1] - b[1]
	d2 := a[2] - b[2]
	return math.Sqrt(d0*d0 + d1*d1 + d2*d2)
}

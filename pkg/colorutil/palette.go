package colorutil

// BandColor identifies one of the resistor color-code colors.
type BandColor string

// The twelve band colors of the standard 4-band code. Gold and silver
// appear only as multiplier or tolerance bands.
const (
	BandBlack  BandColor = "black"
	BandBrown  BandColor = "brown"
	BandRed    BandColor = "red"
	BandOrange BandColor = "orange"
	BandYellow BandColor = "yellow"
	BandGreen  BandColor = "green"
	BandBlue   BandColor = "blue"
	BandViolet BandColor = "violet"
	BandGray   BandColor = "gray"
	BandWhite  BandColor = "white"
	BandGold   BandColor = "gold"
	BandSilver BandColor = "silver"
)

// IsTolerance reports whether the color only appears as a tolerance band.
func (c BandColor) IsTolerance() bool {
	return c == BandGold || c == BandSilver
}

// ReferenceColor pairs a band color with its reference values.
type ReferenceColor struct {
	Color BandColor
	RGB   [3]uint8
	Lab   [3]float64
}

// Reference RGB values for each band color, sampled from calibration
// photographs after white balance. These differ considerably from the
// nominal paint colors because the bands are small, glossy and lit
// obliquely.
var referenceRGB = []struct {
	color BandColor
	rgb   [3]uint8
}{
	{BandBlack, [3]uint8{49, 30, 23}},
	{BandBrown, [3]uint8{107, 41, 33}},
	{BandRed, [3]uint8{122, 29, 28}},
	{BandOrange, [3]uint8{148, 59, 30}},
	{BandYellow, [3]uint8{123, 87, 23}},
	{BandGreen, [3]uint8{21, 43, 43}},
	{BandBlue, [3]uint8{21, 37, 55}},
	{BandViolet, [3]uint8{50, 41, 68}},
	{BandGray, [3]uint8{96, 77, 71}},
	{BandWhite, [3]uint8{130, 102, 90}},
	{BandGold, [3]uint8{120, 64, 39}},
	{BandSilver, [3]uint8{192, 192, 192}},
}

// palette holds the reference colors with precomputed Lab values.
// Built once at startup and never mutated; safe for concurrent reads.
var palette = buildPalette()

func buildPalette() []ReferenceColor {
	refs := make([]ReferenceColor, len(referenceRGB))
	for i, r := range referenceRGB {
		l, a, b := RGBToLab(float64(r.rgb[0]), float64(r.rgb[1]), float64(r.rgb[2]))
		refs[i] = ReferenceColor{Color: r.color, RGB: r.rgb, Lab: [3]float64{l, a, b}}
	}
	return refs
}

// Palette returns the reference color table in enumeration order.
func Palette() []ReferenceColor {
	return palette
}

// NearestBandColor returns the reference color closest to lab in Lab space.
// Ties resolve to the earlier palette entry.
func NearestBandColor(lab [3]float64) BandColor {
	best := palette[0].Color
	bestDist := LabDistance(lab, palette[0].Lab)
	for _, ref := range palette[1:] {
		if d := LabDistance(lab, ref.Lab); d < bestDist {
			bestDist = d
			best = ref.Color
		}
	}
	return best
}

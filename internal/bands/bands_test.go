package bands

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericboehlke/Resistor-Reader/internal/resolve"
	"github.com/ericboehlke/Resistor-Reader/pkg/colorutil"
)

// bandSpec paints a vertical band of the given color over [start, start+width).
type bandSpec struct {
	start, width int
	rgb          [3]uint8
}

// syntheticCrop builds a body-colored crop with full-height painted bands,
// the shape SegmentBands sees after alignment.
func syntheticCrop(w, h int, body [3]uint8, specs []bandSpec) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := body
			for _, s := range specs {
				if x >= s.start && x < s.start+s.width {
					c = s.rgb
					break
				}
			}
			img.SetRGBA(x, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: 255})
		}
	}
	return img
}

func ref(c colorutil.BandColor) [3]uint8 {
	for _, r := range colorutil.Palette() {
		if r.Color == c {
			return r.RGB
		}
	}
	panic("unknown reference color")
}

var fourBands = []bandSpec{
	{20, 12, ref(colorutil.BandWhite)},
	{50, 12, ref(colorutil.BandViolet)},
	{80, 12, ref(colorutil.BandYellow)},
	{110, 12, ref(colorutil.BandGold)},
}

func TestSegmentBandsFindsFour(t *testing.T) {
	crop := syntheticCrop(140, 40, [3]uint8{150, 150, 150}, fourBands)

	segments, err := SegmentBands(crop, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, segments, 4)

	for i, want := range fourBands {
		center := (segments[i].Start + segments[i].End) / 2
		assert.InDelta(t, want.start+want.width/2, center, 3, "band %d center", i)
		assert.Less(t, segments[i].Start, segments[i].End, "band %d non-empty", i)
	}

	// Segments are sorted and disjoint.
	for i := 1; i < 4; i++ {
		assert.GreaterOrEqual(t, segments[i].Start, segments[i-1].End)
	}
}

func TestSegmentBandsInsufficient(t *testing.T) {
	// A bare body has no deviation peaks at all.
	crop := syntheticCrop(140, 40, [3]uint8{150, 150, 150}, nil)
	_, err := SegmentBands(crop, DefaultOptions())
	assert.ErrorIs(t, err, ErrInsufficientBands)

	// Three bands are not enough either.
	crop = syntheticCrop(140, 40, [3]uint8{150, 150, 150}, fourBands[:3])
	_, err = SegmentBands(crop, DefaultOptions())
	assert.ErrorIs(t, err, ErrInsufficientBands)
}

func TestSegmentBandsKeepsStrongest(t *testing.T) {
	// Five bands: the four tall deviations win over a faint fifth.
	specs := append([]bandSpec{}, fourBands...)
	specs = append(specs, bandSpec{132, 4, [3]uint8{146, 146, 146}})
	crop := syntheticCrop(140, 40, [3]uint8{150, 150, 150}, specs)

	segments, err := SegmentBands(crop, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, segments, 4)
	assert.Less(t, segments[3].End, 132, "faint extra band must lose")
}

func TestClassifyExactReferences(t *testing.T) {
	crop := syntheticCrop(140, 40, [3]uint8{150, 150, 150}, fourBands)

	// Sample strictly inside each painted band: the mean is the reference
	// color itself, so classification must be exact.
	wants := []colorutil.BandColor{
		colorutil.BandWhite, colorutil.BandViolet, colorutil.BandYellow, colorutil.BandGold,
	}
	for i, spec := range fourBands {
		seg := Segment{Start: spec.start + 2, End: spec.start + spec.width - 2}
		assert.Equal(t, wants[i], Classify(crop, seg), "band %d", i)
	}
}

func TestClassifyEmptySegment(t *testing.T) {
	crop := syntheticCrop(20, 10, [3]uint8{150, 150, 150}, nil)
	assert.Equal(t, colorutil.BandBlack, Classify(crop, Segment{Start: 5, End: 5}))
}

func TestSegmentAndClassify(t *testing.T) {
	crop := syntheticCrop(140, 40, [3]uint8{150, 150, 150}, fourBands)

	colors, segments, flipped, err := SegmentAndClassify(crop, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, colors, 4)
	require.Len(t, segments, 4)
	assert.False(t, flipped)

	assert.Equal(t, colorutil.BandWhite, colors[0])
	assert.Equal(t, colorutil.BandViolet, colors[1])
	assert.Equal(t, colorutil.BandYellow, colors[2])
	assert.Equal(t, colorutil.BandGold, colors[3])
}

func TestSegmentAndClassifyMirrored(t *testing.T) {
	// Tolerance band leftmost: the reader saw the resistor backwards and
	// must report the rotation.
	mirrored := []bandSpec{
		{20, 12, ref(colorutil.BandGold)},
		{50, 12, ref(colorutil.BandWhite)},
		{80, 12, ref(colorutil.BandViolet)},
		{110, 12, ref(colorutil.BandYellow)},
	}
	crop := syntheticCrop(140, 40, [3]uint8{150, 150, 150}, mirrored)

	colors, _, flipped, err := SegmentAndClassify(crop, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, flipped)
	assert.Equal(t, colorutil.BandGold, colors[3], "tolerance band must end up last")
}

func TestCanonicalize(t *testing.T) {
	colors := []colorutil.BandColor{
		colorutil.BandGold, colorutil.BandBrown, colorutil.BandBlack, colorutil.BandRed,
	}
	segments := []Segment{{0, 5}, {10, 15}, {20, 25}, {30, 35}}

	rotated := Canonicalize(colors, segments)
	assert.True(t, rotated)
	assert.Equal(t, []colorutil.BandColor{
		colorutil.BandBrown, colorutil.BandBlack, colorutil.BandRed, colorutil.BandGold,
	}, colors)
	assert.Equal(t, Segment{0, 5}, segments[3], "segment follows its color")

	// Already canonical: idempotent no-op.
	again := Canonicalize(colors, segments)
	assert.False(t, again)
	assert.Equal(t, colorutil.BandGold, colors[3])
}

func TestCanonicalizeLeavesToleranceLastAlone(t *testing.T) {
	// Gold on both ends stays put; rotating would not improve anything.
	colors := []colorutil.BandColor{
		colorutil.BandGold, colorutil.BandBrown, colorutil.BandBlack, colorutil.BandSilver,
	}
	segments := []Segment{{0, 5}, {10, 15}, {20, 25}, {30, 35}}
	assert.False(t, Canonicalize(colors, segments))

	assert.False(t, Canonicalize(nil, nil))
}

func TestFourBandScenario(t *testing.T) {
	// A 120x40 crop with 10 px bands at columns 10/35/60/85 reading
	// brown black red gold: 10 * 100 = 1k.
	specs := []bandSpec{
		{10, 10, ref(colorutil.BandBrown)},
		{35, 10, ref(colorutil.BandBlack)},
		{60, 10, ref(colorutil.BandRed)},
		{85, 10, ref(colorutil.BandGold)},
	}
	crop := syntheticCrop(120, 40, [3]uint8{150, 150, 150}, specs)

	colors, segments, flipped, err := SegmentAndClassify(crop, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, segments, 4)
	assert.False(t, flipped)

	for i, spec := range specs {
		center := (segments[i].Start + segments[i].End) / 2
		assert.InDelta(t, spec.start+spec.width/2, center, 3, "band %d", i)
	}

	want := []colorutil.BandColor{
		colorutil.BandBrown, colorutil.BandBlack, colorutil.BandRed, colorutil.BandGold,
	}
	assert.Equal(t, want, colors)

	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = string(c)
	}
	ohms, err := resolve.Resolve(names)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, ohms, 1e-9)
}

func TestRenderOverlay(t *testing.T) {
	crop := syntheticCrop(140, 40, [3]uint8{150, 150, 150}, fourBands)
	colors, segments, flipped, err := SegmentAndClassify(crop, DefaultOptions())
	require.NoError(t, err)

	over := RenderOverlay(crop, segments, colors, flipped)
	b := over.Bounds()
	assert.Equal(t, 600, b.Dx())
	assert.Equal(t, 400, b.Dy())
}

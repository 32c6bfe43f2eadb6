// Package bands segments an aligned resistor crop into its four color
// bands and classifies each band against the reference palette.
package bands

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/ericboehlke/Resistor-Reader/internal/preprocess"
	"github.com/ericboehlke/Resistor-Reader/pkg/colorutil"
)

// ErrInsufficientBands is returned when fewer than four color-change peaks
// are found in the band curve.
var ErrInsufficientBands = errors.New("unable to find four bands")

// Segment is a half-open column interval [Start, End) over the crop width.
type Segment struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Options configures band segmentation.
type Options struct {
	// PeakSeparation is the minimum distance between detected peaks as a
	// fraction of the crop width. Keeps wide bands from splitting into
	// multiple sub-peaks.
	PeakSeparation float64 `yaml:"peak_separation"`
	// SmoothKernel is the Gaussian smoothing kernel size (odd).
	SmoothKernel int `yaml:"smooth_kernel"`
}

// DefaultOptions returns the segmentation defaults.
func DefaultOptions() Options {
	return Options{
		PeakSeparation: 0.05,
		SmoothKernel:   9,
	}
}

// SegmentBands locates the four color bands in the crop. Columns over a
// painted band diverge from the body baseline in Lab space; the four
// highest peaks of the smoothed per-column deviation curve become band
// centers, each grown outward while the curve stays above half the peak
// amplitude. Segments come back sorted left to right.
func SegmentBands(crop *image.RGBA, opts Options) ([]Segment, error) {
	lab := preprocess.ToLab(crop)
	curve := smooth(deviationCurve(lab), gaussianKernel(opts.SmoothKernel))

	width := len(curve)
	minDist := max(1, int(float64(width)*opts.PeakSeparation))
	peaks := findPeaks(curve, minDist)
	if len(peaks) < 4 {
		return nil, fmt.Errorf("found %d band peaks: %w", len(peaks), ErrInsufficientBands)
	}

	// Keep the four strongest peaks, in left-to-right order.
	sort.Slice(peaks, func(i, j int) bool { return curve[peaks[i]] > curve[peaks[j]] })
	centers := peaks[:4]
	sort.Ints(centers)

	segments := make([]Segment, 0, 4)
	for _, c := range centers {
		segments = append(segments, growHalfMax(curve, c))
	}
	sort.Slice(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })
	return segments, nil
}

// growHalfMax expands a segment symmetrically outward from the peak while
// the curve stays above half the peak amplitude, bounded by the edges.
func growHalfMax(curve []float64, c int) Segment {
	half := 0.5 * curve[c]
	left := c
	for left > 0 && curve[left] > half {
		left--
	}
	right := c
	for right < len(curve)-1 && curve[right] > half {
		right++
	}
	if right == left {
		right++ // flat zero peak; keep the interval non-empty
	}
	return Segment{Start: left, End: right}
}

// Classify returns the band color for one segment. Only the central 60% of
// the crop height is sampled, avoiding bleed from the body edges and leads.
func Classify(crop *image.RGBA, seg Segment) colorutil.BandColor {
	h := crop.Bounds().Dy()
	y0, y1 := int(float64(h)*0.2), int(float64(h)*0.8)
	if y1 <= y0 {
		y0, y1 = 0, h
	}

	var sumR, sumG, sumB float64
	n := 0
	for y := y0; y < y1; y++ {
		row := crop.PixOffset(0, y)
		for x := seg.Start; x < seg.End; x++ {
			i := row + x*4
			sumR += float64(crop.Pix[i])
			sumG += float64(crop.Pix[i+1])
			sumB += float64(crop.Pix[i+2])
			n++
		}
	}
	if n == 0 {
		return colorutil.BandBlack
	}

	l, a, b := colorutil.RGBToLab(sumR/float64(n), sumG/float64(n), sumB/float64(n))
	return colorutil.NearestBandColor([3]float64{l, a, b})
}

// Canonicalize rotates the color and segment lists by one position when the
// first band classifies as a tolerance-only color and the last does not:
// the tolerance band is conventionally rightmost, so this corrects a
// mirrored capture. Running it on an already-canonical sequence is a no-op.
// Reports whether a rotation happened.
func Canonicalize(colors []colorutil.BandColor, segments []Segment) bool {
	if len(colors) == 0 || len(colors) != len(segments) {
		return false
	}
	if !colors[0].IsTolerance() || colors[len(colors)-1].IsTolerance() {
		return false
	}
	first := colors[0]
	copy(colors, colors[1:])
	colors[len(colors)-1] = first

	firstSeg := segments[0]
	copy(segments, segments[1:])
	segments[len(segments)-1] = firstSeg
	return true
}

// SegmentAndClassify runs segmentation, classification and orientation
// canonicalization in one pass. The flipped result reports whether the
// capture was mirrored.
func SegmentAndClassify(crop *image.RGBA, opts Options) (colors []colorutil.BandColor, segments []Segment, flipped bool, err error) {
	segments, err = SegmentBands(crop, opts)
	if err != nil {
		return nil, nil, false, err
	}
	colors = make([]colorutil.BandColor, len(segments))
	for i, seg := range segments {
		colors[i] = Classify(crop, seg)
	}
	flipped = Canonicalize(colors, segments)
	return colors, segments, flipped, nil
}

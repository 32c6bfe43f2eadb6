package bands

import (
	"math"
	"sort"

	"github.com/ericboehlke/Resistor-Reader/internal/raster"
)

// deviationCurve computes, for every column, the Euclidean distance of the
// column's mean Lab vector from the per-channel median of all column means.
// The body and any residual background dominate the median, so columns over
// a painted band stand out.
func deviationCurve(lab *raster.Image3) []float64 {
	w, h := lab.W, lab.H
	means := make([][3]float64, w)
	for x := 0; x < w; x++ {
		var s0, s1, s2 float64
		for y := 0; y < h; y++ {
			c0, c1, c2 := lab.At(x, y)
			s0 += float64(c0)
			s1 += float64(c1)
			s2 += float64(c2)
		}
		n := float64(h)
		means[x] = [3]float64{s0 / n, s1 / n, s2 / n}
	}

	var base [3]float64
	tmp := make([]float64, w)
	for ch := 0; ch < 3; ch++ {
		for x := 0; x < w; x++ {
			tmp[x] = means[x][ch]
		}
		sort.Float64s(tmp)
		base[ch] = median(tmp)
	}

	curve := make([]float64, w)
	for x := 0; x < w; x++ {
		d0 := means[x][0] - base[0]
		d1 := means[x][1] - base[1]
		d2 := means[x][2] - base[2]
		curve[x] = math.Sqrt(d0*d0 + d1*d1 + d2*d2)
	}
	return curve
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// gaussianKernel builds a normalized 1-D Gaussian kernel of the given odd
// size, with sigma derived from the size the way OpenCV does when none is
// given.
func gaussianKernel(size int) []float64 {
	if size < 1 {
		size = 1
	}
	if size%2 == 0 {
		size++
	}
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8

	k := make([]float64, size)
	mid := size / 2
	var sum float64
	for i := range k {
		d := float64(i - mid)
		k[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// smooth convolves the curve with the kernel, reflecting at the borders
// (reflect-101, excluding the edge sample itself).
func smooth(curve, kernel []float64) []float64 {
	n := len(curve)
	mid := len(kernel) / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var acc float64
		for j, kv := range kernel {
			idx := i + j - mid
			if idx < 0 {
				idx = -idx
			}
			if idx >= n {
				idx = 2*n - 2 - idx
			}
			if idx < 0 || idx >= n {
				idx = i // kernel wider than the curve; fall back to center
			}
			acc += kv * curve[idx]
		}
		out[i] = acc
	}
	return out
}

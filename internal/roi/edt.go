package roi

import (
	"math"

	"github.com/ericboehlke/Resistor-Reader/internal/raster"
)

// DistanceTransform returns, for every pixel, the squared Euclidean
// distance to the nearest background pixel. Background pixels are
// zero-cost sites and foreground pixels start at +Inf; a 1-D lower-envelope
// transform runs over every column, then over every row of the partial
// result, giving the exact squared distance in O(W*H).
func DistanceTransform(m *raster.Mask) []float64 {
	w, h := m.W, m.H
	d := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.At(x, y) {
				d[y*w+x] = math.Inf(1)
			}
		}
	}

	n := max(w, h)
	line := make([]float64, n)
	out := make([]float64, n)
	apex := make([]int, n)
	bound := make([]float64, n+1)

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			line[y] = d[y*w+x]
		}
		dt1d(line[:h], out[:h], apex, bound)
		for y := 0; y < h; y++ {
			d[y*w+x] = out[y]
		}
	}

	for y := 0; y < h; y++ {
		copy(line[:w], d[y*w:(y+1)*w])
		dt1d(line[:w], out[:w], apex, bound)
		copy(d[y*w:(y+1)*w], out[:w])
	}

	return d
}

// dt1d computes the 1-D squared distance transform of the sampled cost f.
// It maintains the lower envelope of the parabolas y = f[p] + (q-p)^2 as an
// explicit stack: apex holds candidate parabola apex indices and bound the
// column where each takes over from its predecessor. Sites with infinite
// cost never enter the envelope; if no finite site exists the whole line
// stays at +Inf.
func dt1d(f, out []float64, apex []int, bound []float64) {
	n := len(f)
	k := -1

	for q := 0; q < n; q++ {
		if math.IsInf(f[q], 1) {
			continue
		}
		if k < 0 {
			k = 0
			apex[0] = q
			bound[0] = math.Inf(-1)
			bound[1] = math.Inf(1)
			continue
		}
		s := intersect(f, q, apex[k])
		for s <= bound[k] {
			k--
			s = intersect(f, q, apex[k])
		}
		k++
		apex[k] = q
		bound[k] = s
		bound[k+1] = math.Inf(1)
	}

	if k < 0 {
		for q := 0; q < n; q++ {
			out[q] = math.Inf(1)
		}
		return
	}

	j := 0
	for q := 0; q < n; q++ {
		for bound[j+1] < float64(q) {
			j++
		}
		p := apex[j]
		out[q] = float64((q-p)*(q-p)) + f[p]
	}
}

// intersect returns the column where the parabola anchored at q overtakes
// the one anchored at p (p < q, both finite).
func intersect(f []float64, q, p int) float64 {
	return (f[q] + float64(q*q) - f[p] - float64(p*p)) / float64(2*q-2*p)
}

// RemoveLeads keeps only pixels whose Euclidean distance to the background
// is at least distThresh. Thin wire leads fall below the threshold and are
// stripped; the thicker resistor body survives. Raising the threshold can
// only shrink the surviving set.
func RemoveLeads(m *raster.Mask, distThresh float64) *raster.Mask {
	d := DistanceTransform(m)
	minSq := distThresh * distThresh
	out := raster.NewMask(m.W, m.H)
	for idx, sq := range d {
		if sq >= minSq {
			out.Set(idx%m.W, idx/m.W, true)
		}
	}
	return out
}

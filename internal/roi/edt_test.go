package roi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericboehlke/Resistor-Reader/internal/raster"
)

// bruteForceEDT is the O(n^2) reference: squared distance to the nearest
// background pixel, +Inf when there is none.
func bruteForceEDT(m *raster.Mask) []float64 {
	d := make([]float64, m.W*m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if !m.At(x, y) {
				continue
			}
			best := math.Inf(1)
			for by := 0; by < m.H; by++ {
				for bx := 0; bx < m.W; bx++ {
					if m.At(bx, by) {
						continue
					}
					dx, dy := float64(x-bx), float64(y-by)
					if sq := dx*dx + dy*dy; sq < best {
						best = sq
					}
				}
			}
			d[y*m.W+x] = best
		}
	}
	return d
}

func TestDistanceTransformMatchesBruteForce(t *testing.T) {
	// A blob with a protruding thin arm, off-center.
	m := raster.NewMask(17, 11)
	for y := 3; y <= 8; y++ {
		for x := 2; x <= 9; x++ {
			m.Set(x, y, true)
		}
	}
	for x := 10; x <= 15; x++ {
		m.Set(x, 5, true)
	}

	got := DistanceTransform(m)
	want := bruteForceEDT(m)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "pixel %d (%d,%d)", i, i%m.W, i/m.W)
	}
}

func TestDistanceTransformBackgroundIsZero(t *testing.T) {
	m := raster.NewMask(5, 5)
	m.Set(2, 2, true)
	d := DistanceTransform(m)
	assert.Equal(t, 0.0, d[0])
	assert.Equal(t, 1.0, d[2*5+2])
}

func TestDistanceTransformAllForeground(t *testing.T) {
	// No background anywhere: every distance is infinite.
	m := raster.NewMask(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			m.Set(x, y, true)
		}
	}
	d := DistanceTransform(m)
	for i := range d {
		assert.True(t, math.IsInf(d[i], 1), "pixel %d", i)
	}
}

func TestRemoveLeadsStripsThinArm(t *testing.T) {
	// A thick 9-wide body with a 1-pixel arm. Threshold 3 requires the
	// nearest background to be at least 3 away, which only interior body
	// pixels satisfy.
	m := raster.NewMask(30, 15)
	for y := 2; y <= 12; y++ {
		for x := 2; x <= 14; x++ {
			m.Set(x, y, true)
		}
	}
	for x := 15; x <= 28; x++ {
		m.Set(x, 7, true)
	}

	out := RemoveLeads(m, 3.0)
	assert.Greater(t, out.Count(), 0, "body core must survive")
	for x := 16; x <= 28; x++ {
		assert.False(t, out.At(x, 7), "arm pixel (%d,7) must be stripped", x)
	}
	assert.True(t, out.At(8, 7), "body center must survive")
}

func TestRemoveLeadsMonotoneInThreshold(t *testing.T) {
	m := raster.NewMask(20, 20)
	for y := 4; y <= 15; y++ {
		for x := 4; x <= 15; x++ {
			m.Set(x, y, true)
		}
	}

	prev := m.Count()
	for _, thresh := range []float64{1, 2, 3, 4, 5} {
		n := RemoveLeads(m, thresh).Count()
		assert.LessOrEqual(t, n, prev, "threshold %g", thresh)
		prev = n
	}
}

func TestLargestComponentKeepsBiggest(t *testing.T) {
	m := raster.NewMask(12, 6)
	// Component A: 6 pixels.
	for x := 0; x < 3; x++ {
		m.Set(x, 0, true)
		m.Set(x, 1, true)
	}
	// Component B: 9 pixels, separated by background.
	for y := 3; y < 6; y++ {
		for x := 8; x < 11; x++ {
			m.Set(x, y, true)
		}
	}

	out := LargestComponent(m)
	assert.Equal(t, 9, out.Count())
	assert.True(t, out.At(9, 4))
	assert.False(t, out.At(1, 0))
}

func TestLargestComponentDiagonalIsSeparate(t *testing.T) {
	// 4-connectivity: diagonal neighbors are distinct components.
	m := raster.NewMask(4, 4)
	m.Set(0, 0, true)
	m.Set(1, 1, true)
	m.Set(2, 2, true)

	out := LargestComponent(m)
	assert.Equal(t, 1, out.Count())
}

func TestLargestComponentEmpty(t *testing.T) {
	out := LargestComponent(raster.NewMask(5, 5))
	assert.Equal(t, 0, out.Count())
}

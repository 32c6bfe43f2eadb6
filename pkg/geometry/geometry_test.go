package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoint2DOps(t *testing.T) {
	p := NewPoint2D(3, 4)
	assert.InDelta(t, 5.0, p.Norm(), 1e-12)
	assert.InDelta(t, 5.0, p.Distance(Point2D{}), 1e-12)
	assert.Equal(t, Point2D{X: 4, Y: 6}, p.Add(Point2D{X: 1, Y: 2}))
	assert.Equal(t, Point2D{X: 2, Y: 2}, p.Sub(Point2D{X: 1, Y: 2}))
	assert.Equal(t, Point2D{X: 6, Y: 8}, p.Scale(2))
	assert.InDelta(t, 11.0, p.Dot(Point2D{X: 1, Y: 2}), 1e-12)

	// Perp is a quarter turn, so it is orthogonal and length preserving.
	q := p.Perp()
	assert.InDelta(t, 0.0, p.Dot(q), 1e-12)
	assert.InDelta(t, p.Norm(), q.Norm(), 1e-12)
}

func TestRectIntPadClip(t *testing.T) {
	r := RectInt{X: 5, Y: 5, Width: 10, Height: 10}
	padded := r.Pad(3)
	assert.Equal(t, RectInt{X: 2, Y: 2, Width: 16, Height: 16}, padded)

	clipped := padded.Clip(12, 12)
	assert.Equal(t, RectInt{X: 2, Y: 2, Width: 10, Height: 10}, clipped)

	// Fully outside collapses to an empty rectangle.
	outside := RectInt{X: 20, Y: 20, Width: 5, Height: 5}.Clip(10, 10)
	assert.Equal(t, 0, outside.Width)
	assert.Equal(t, 0, outside.Height)
}

func TestBoundingBoxInt(t *testing.T) {
	pts := []PointInt{{X: 3, Y: 7}, {X: 1, Y: 9}, {X: 5, Y: 2}}
	box := BoundingBoxInt(pts)
	assert.Equal(t, RectInt{X: 1, Y: 2, Width: 5, Height: 8}, box)

	single := BoundingBoxInt([]PointInt{{X: 4, Y: 4}})
	assert.Equal(t, RectInt{X: 4, Y: 4, Width: 1, Height: 1}, single)

	assert.Equal(t, RectInt{}, BoundingBoxInt(nil))
}

func TestCentroid(t *testing.T) {
	pts := []Point2D{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	c := Centroid(pts)
	assert.InDelta(t, 1.0, c.X, 1e-12)
	assert.InDelta(t, 1.0, c.Y, 1e-12)
	assert.Equal(t, Point2D{}, Centroid(nil))
}

func TestAffineComposeInverse(t *testing.T) {
	tr := Translation(10, -5).Compose(Scaling(2, 3))
	p := Point2D{X: 1, Y: 1}
	got := tr.Apply(p)
	assert.InDelta(t, 12.0, got.X, 1e-12)
	assert.InDelta(t, -2.0, got.Y, 1e-12)

	inv, ok := tr.Inverse()
	require.True(t, ok)
	back := inv.Apply(got)
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)

	_, ok = Scaling(0, 1).Inverse()
	assert.False(t, ok)
}

func TestRectToQuadMapsCorners(t *testing.T) {
	quad := [4]Point2D{
		{X: 10, Y: 20},
		{X: 110, Y: 25},
		{X: 105, Y: 80},
		{X: 8, Y: 75},
	}
	h, err := RectToQuad(100, 50, quad)
	require.NoError(t, err)

	src := [4]Point2D{{0, 0}, {100, 0}, {100, 50}, {0, 50}}
	for i := range src {
		got := h.Apply(src[i])
		assert.InDelta(t, quad[i].X, got.X, 1e-6, "corner %d x", i)
		assert.InDelta(t, quad[i].Y, got.Y, 1e-6, "corner %d y", i)
	}
}

func TestRectToQuadAffineCase(t *testing.T) {
	// A parallelogram target keeps the perspective row trivial, so the
	// midpoint of the rectangle maps to the midpoint of the quad.
	quad := [4]Point2D{
		{X: 5, Y: 5},
		{X: 25, Y: 15},
		{X: 15, Y: 35},
		{X: -5, Y: 25},
	}
	h, err := RectToQuad(10, 10, quad)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, h.H[2][0], 1e-9)
	assert.InDelta(t, 0.0, h.H[2][1], 1e-9)

	mid := h.Apply(Point2D{X: 5, Y: 5})
	assert.InDelta(t, 10.0, mid.X, 1e-6)
	assert.InDelta(t, 20.0, mid.Y, 1e-6)
}

func TestRectToQuadRejectsBadRect(t *testing.T) {
	_, err := RectToQuad(0, 10, [4]Point2D{})
	assert.Error(t, err)
}

func TestOrientedBox(t *testing.T) {
	angle := 30.0 * math.Pi / 180
	u := Point2D{X: math.Cos(angle), Y: math.Sin(angle)}
	box := OrientedBox{
		Center: Point2D{X: 50, Y: 50},
		U:      u,
		V:      u.Perp(),
		UMin:   -20, UMax: 20,
		VMin: -5, VMax: 5,
	}

	assert.InDelta(t, 40.0, box.Width(), 1e-12)
	assert.InDelta(t, 10.0, box.Height(), 1e-12)
	assert.InDelta(t, 30.0, box.AngleDegrees(), 1e-9)

	padded := box.Pad(2)
	assert.InDelta(t, 44.0, padded.Width(), 1e-12)
	assert.InDelta(t, 14.0, padded.Height(), 1e-12)

	// Corners must be box.Width/Height apart along each edge.
	c := box.Corners()
	assert.InDelta(t, box.Width(), c[0].Distance(c[1]), 1e-9)
	assert.InDelta(t, box.Height(), c[1].Distance(c[2]), 1e-9)
	assert.InDelta(t, box.Width(), c[2].Distance(c[3]), 1e-9)
	assert.InDelta(t, box.Height(), c[3].Distance(c[0]), 1e-9)
}

func TestAngleDegreesNormalized(t *testing.T) {
	// Pointing left is the same axis as pointing right.
	box := OrientedBox{U: Point2D{X: -1, Y: 0}}
	assert.InDelta(t, 0.0, box.AngleDegrees(), 1e-9)

	// Pointing down-left comes back into [-90, 90].
	box = OrientedBox{U: Point2D{X: -math.Sqrt2 / 2, Y: -math.Sqrt2 / 2}}
	deg := box.AngleDegrees()
	assert.GreaterOrEqual(t, deg, -90.0)
	assert.LessOrEqual(t, deg, 90.0)
	assert.InDelta(t, 45.0, deg, 1e-9)
}

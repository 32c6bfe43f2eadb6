package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Identity returns the identity transform.
func Identity() AffineTransform {
	return AffineTransform{A: 1, D: 1}
}

// Translation returns a translation transform.
func Translation(tx, ty float64) AffineTransform {
	return AffineTransform{A: 1, D: 1, TX: tx, TY: ty}
}

// Scaling returns a scaling transform.
func Scaling(sx, sy float64) AffineTransform {
	return AffineTransform{A: sx, D: sy}
}

// Apply applies the transform to a point.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// Compose returns this transform composed with another (this * other).
func (t AffineTransform) Compose(other AffineTransform) AffineTransform {
	return AffineTransform{
		A:  t.A*other.A + t.B*other.C,
		B:  t.A*other.B + t.B*other.D,
		TX: t.A*other.TX + t.B*other.TY + t.TX,
		C:  t.C*other.A + t.D*other.C,
		D:  t.C*other.B + t.D*other.D,
		TY: t.C*other.TX + t.D*other.TY + t.TY,
	}
}

// Inverse returns the inverse transform, if it exists.
func (t AffineTransform) Inverse() (AffineTransform, bool) {
	det := t.A*t.D - t.B*t.C
	if math.Abs(det) < 1e-10 {
		return AffineTransform{}, false
	}

	invDet := 1.0 / det
	return AffineTransform{
		A:  t.D * invDet,
		B:  -t.B * invDet,
		TX: (t.B*t.TY - t.D*t.TX) * invDet,
		C:  -t.C * invDet,
		D:  t.A * invDet,
		TY: (t.C*t.TX - t.A*t.TY) * invDet,
	}, true
}

// Homography represents a 3x3 projective transformation. The bottom-right
// entry is fixed at 1, leaving eight degrees of freedom.
type Homography struct {
	H [3][3]float64
}

// Apply maps a point through the homography, including the perspective divide.
func (h Homography) Apply(p Point2D) Point2D {
	w := h.H[2][0]*p.X + h.H[2][1]*p.Y + h.H[2][2]
	if math.Abs(w) < 1e-12 {
		return Point2D{}
	}
	return Point2D{
		X: (h.H[0][0]*p.X + h.H[0][1]*p.Y + h.H[0][2]) / w,
		Y: (h.H[1][0]*p.X + h.H[1][1]*p.Y + h.H[1][2]) / w,
	}
}

// RectToQuad computes the homography mapping the axis-aligned rectangle
// (0,0)-(width,height) onto the quadrilateral quad. Quad corners are ordered
// top-left, top-right, bottom-right, bottom-left in the rectangle's frame.
// Sampling an output pixel through the result yields its source location,
// so only the quad region is ever resampled.
func RectToQuad(width, height float64, quad [4]Point2D) (Homography, error) {
	if width <= 0 || height <= 0 {
		return Homography{}, fmt.Errorf("invalid rectangle %gx%g", width, height)
	}

	src := [4]Point2D{
		{X: 0, Y: 0},
		{X: width, Y: 0},
		{X: width, Y: height},
		{X: 0, Y: height},
	}

	// Each correspondence contributes two rows of the standard DLT system
	// A*h = b for the eight unknown homography entries.
	A := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		xp, yp := quad[i].X, quad[i].Y

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		A.Set(i*2, 6, -x*xp)
		A.Set(i*2, 7, -y*xp)
		b.SetVec(i*2, xp)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		A.Set(i*2+1, 6, -x*yp)
		A.Set(i*2+1, 7, -y*yp)
		b.SetVec(i*2+1, yp)
	}

	var h mat.VecDense
	if err := h.SolveVec(A, b); err != nil {
		return Homography{}, fmt.Errorf("degenerate quad: %w", err)
	}

	return Homography{H: [3][3]float64{
		{h.AtVec(0), h.AtVec(1), h.AtVec(2)},
		{h.AtVec(3), h.AtVec(4), h.AtVec(5)},
		{h.AtVec(6), h.AtVec(7), 1},
	}}, nil
}

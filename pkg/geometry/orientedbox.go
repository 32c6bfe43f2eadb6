package geometry

import "math"

// OrientedBox is a rectangle aligned with a point cloud's principal axes.
// U is the dominant (long) axis and V its perpendicular; both are unit
// vectors. The extents are projections of the cloud onto each axis,
// measured from Center.
type OrientedBox struct {
	Center Point2D
	U, V   Point2D
	UMin   float64
	UMax   float64
	VMin   float64
	VMax   float64
}

// Width returns the extent along the dominant axis.
func (b OrientedBox) Width() float64 {
	return b.UMax - b.UMin
}

// Height returns the extent along the perpendicular axis.
func (b OrientedBox) Height() float64 {
	return b.VMax - b.VMin
}

// Pad grows the box by margin along both axes.
func (b OrientedBox) Pad(margin float64) OrientedBox {
	b.UMin -= margin
	b.UMax += margin
	b.VMin -= margin
	b.VMax += margin
	return b
}

// Corners returns the box corners in image coordinates, ordered top-left,
// top-right, bottom-right, bottom-left in the box's own (u,v) frame.
func (b OrientedBox) Corners() [4]Point2D {
	at := func(u, v float64) Point2D {
		return b.Center.Add(b.U.Scale(u)).Add(b.V.Scale(v))
	}
	return [4]Point2D{
		at(b.UMin, b.VMin),
		at(b.UMax, b.VMin),
		at(b.UMax, b.VMax),
		at(b.UMin, b.VMax),
	}
}

// AngleDegrees returns the signed angle of the dominant axis relative to
// horizontal, normalized to [-90, 90].
func (b OrientedBox) AngleDegrees() float64 {
	deg := math.Atan2(b.U.Y, b.U.X) * 180 / math.Pi
	for deg > 90 {
		deg -= 180
	}
	for deg < -90 {
		deg += 180
	}
	return deg
}

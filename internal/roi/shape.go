package roi

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ericboehlke/Resistor-Reader/internal/raster"
	"github.com/ericboehlke/Resistor-Reader/pkg/geometry"
)

// Result holds the extracted region of interest.
type Result struct {
	Crop  *image.RGBA         // axis-aligned, leadless crop of the body
	Mask  *raster.Mask        // body mask in crop coordinates
	Angle float64             // signed angle of the long axis, degrees in [-90, 90]; diagnostics only
	Box   geometry.OrientedBox // oriented box in source coordinates; zero if alignment was skipped
}

// Extract isolates the resistor body: largest connected component, lead
// removal, principal-axis estimation and a quad warp of the oriented
// bounding box onto an axis-aligned crop. With fewer than two surviving
// pixels the alignment is skipped and the unrotated crop is returned with
// angle zero.
func Extract(img *image.RGBA, mask *raster.Mask, opts ExtractOptions) (*Result, error) {
	if mask.Count() == 0 {
		return nil, fmt.Errorf("empty input mask: %w", ErrNoForeground)
	}

	body := RemoveLeads(LargestComponent(mask), opts.LeadDistance)
	pts := body.Points()
	if len(pts) == 0 {
		return nil, fmt.Errorf("lead removal stripped every pixel: %w", ErrNoForeground)
	}
	if len(pts) < 2 {
		return axisAlignedCrop(img, body, pts, opts.Padding), nil
	}

	u, ok := principalAxis(pts)
	if !ok {
		return axisAlignedCrop(img, body, pts, opts.Padding), nil
	}
	v := u.Perp()

	center := geometry.Centroid(toFloat(pts))
	uMin, uMax := math.Inf(1), math.Inf(-1)
	vMin, vMax := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		d := p.ToFloat().Sub(center)
		pu, pv := d.Dot(u), d.Dot(v)
		uMin = math.Min(uMin, pu)
		uMax = math.Max(uMax, pu)
		vMin = math.Min(vMin, pv)
		vMax = math.Max(vMax, pv)
	}

	box := geometry.OrientedBox{
		Center: center,
		U:      u,
		V:      v,
		UMin:   uMin,
		UMax:   uMax,
		VMin:   vMin,
		VMax:   vMax,
	}.Pad(float64(opts.Padding))

	outW := max(int(math.Ceil(box.Width())), 1)
	outH := max(int(math.Ceil(box.Height())), 1)

	hom, err := geometry.RectToQuad(float64(outW), float64(outH), box.Corners())
	if err != nil {
		// A degenerate box means the points are effectively collinear;
		// fall back to the unrotated crop.
		return axisAlignedCrop(img, body, pts, opts.Padding), nil
	}

	return &Result{
		Crop:  WarpQuad(img, hom, outW, outH),
		Mask:  WarpQuadMask(body, hom, outW, outH),
		Angle: box.AngleDegrees(),
		Box:   box,
	}, nil
}

// principalAxis returns the dominant eigenvector of the point cloud's
// covariance: the resistor's long axis. The vector is oriented so its
// angle from horizontal lies in [-90, 90].
func principalAxis(pts []geometry.PointInt) (geometry.Point2D, bool) {
	c := geometry.Centroid(toFloat(pts))

	var sxx, sxy, syy float64
	for _, p := range pts {
		dx := float64(p.X) - c.X
		dy := float64(p.Y) - c.Y
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}
	n := float64(len(pts))
	cov := mat.NewSymDense(2, []float64{sxx / n, sxy / n, sxy / n, syy / n})

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return geometry.Point2D{}, false
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Eigenvalues come back ascending; the long axis is the second column.
	u := geometry.Point2D{X: vecs.At(0, 1), Y: vecs.At(1, 1)}
	if u.Norm() == 0 {
		return geometry.Point2D{}, false
	}
	if u.X < 0 || (u.X == 0 && u.Y < 0) {
		u = u.Scale(-1)
	}
	return u, true
}

// axisAlignedCrop returns the padded bounding-box crop without any
// rotation, used when too few pixels survive to estimate an axis.
func axisAlignedCrop(img *image.RGBA, body *raster.Mask, pts []geometry.PointInt, padding int) *Result {
	bbox := geometry.BoundingBoxInt(pts).Pad(padding).Clip(body.W, body.H)

	crop := image.NewRGBA(image.Rect(0, 0, bbox.Width, bbox.Height))
	draw.Draw(crop, crop.Bounds(), img, image.Pt(bbox.X, bbox.Y), draw.Src)

	cmask := raster.NewMask(bbox.Width, bbox.Height)
	for y := 0; y < bbox.Height; y++ {
		for x := 0; x < bbox.Width; x++ {
			if body.At(bbox.X+x, bbox.Y+y) {
				cmask.Set(x, y, true)
			}
		}
	}

	return &Result{Crop: crop, Mask: cmask, Angle: 0}
}

func toFloat(pts []geometry.PointInt) []geometry.Point2D {
	out := make([]geometry.Point2D, len(pts))
	for i, p := range pts {
		out[i] = p.ToFloat()
	}
	return out
}

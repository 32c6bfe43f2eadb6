package bands

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ericboehlke/Resistor-Reader/pkg/colorutil"
	"github.com/ericboehlke/Resistor-Reader/pkg/geometry"
)

// Overlay dimensions; the crop is tiny, so it is upscaled for legibility.
const (
	overlayWidth  = 600
	overlayHeight = 400
)

// RenderOverlay draws the detected segments and their labels onto an
// upscaled copy of the crop for debug snapshots. When the orientation was
// canonicalized the overlay is mirrored so the drawn boxes still line up
// with the rotated band order.
func RenderOverlay(crop *image.RGBA, segments []Segment, colors []colorutil.BandColor, flipped bool) image.Image {
	over := imaging.Resize(crop, overlayWidth, overlayHeight, imaging.NearestNeighbor)
	if flipped {
		over = imaging.FlipH(over)
	}

	b := crop.Bounds()
	scale := geometry.Scaling(
		overlayWidth/float64(b.Dx()),
		overlayHeight/float64(b.Dy()),
	)

	for i, seg := range segments {
		x0 := int(scale.Apply(geometry.Point2D{X: float64(seg.Start)}).X)
		x1 := int(scale.Apply(geometry.Point2D{X: float64(seg.End)}).X) - 1
		if flipped {
			x0, x1 = overlayWidth-1-x1, overlayWidth-1-x0
		}
		drawRect(over, x0, 0, x1, overlayHeight-1, colorutil.Green, 2)

		if i < len(colors) {
			d := &font.Drawer{
				Dst:  over,
				Src:  image.NewUniform(colorutil.Red),
				Face: basicfont.Face7x13,
				Dot:  fixed.P(x0+4, 18),
			}
			d.DrawString(string(colors[i]))
		}
	}
	return over
}

func drawRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.RGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		hline(img, x0, x1, y0+t, c)
		hline(img, x0, x1, y1-t, c)
		vline(img, x0+t, y0, y1, c)
		vline(img, x1-t, y0, y1, c)
	}
}

func hline(img *image.NRGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x <= x1; x++ {
		if image.Pt(x, y).In(img.Bounds()) {
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
}

func vline(img *image.NRGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		if image.Pt(x, y).In(img.Bounds()) {
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
}

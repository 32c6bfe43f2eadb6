package roi

import (
	"image"
	"math"

	"github.com/ericboehlke/Resistor-Reader/internal/raster"
	"github.com/ericboehlke/Resistor-Reader/pkg/geometry"
)

// WarpQuad resamples the source region under the homography into a
// width x height output using bilinear interpolation. Only the mapped quad
// region of the source is ever touched, so no blank fill corners appear.
// Samples falling outside the source clamp to the nearest edge pixel.
func WarpQuad(src *image.RGBA, hom geometry.Homography, width, height int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := hom.Apply(geometry.Point2D{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			r, g, b := sampleBilinear(src, p.X-0.5, p.Y-0.5)
			i := out.PixOffset(x, y)
			out.Pix[i] = r
			out.Pix[i+1] = g
			out.Pix[i+2] = b
			out.Pix[i+3] = 255
		}
	}
	return out
}

// WarpQuadMask resamples a mask under the homography with nearest-neighbor
// lookup. Samples outside the source count as background.
func WarpQuadMask(src *raster.Mask, hom geometry.Homography, width, height int) *raster.Mask {
	out := raster.NewMask(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := hom.Apply(geometry.Point2D{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			if src.At(int(math.Floor(p.X)), int(math.Floor(p.Y))) {
				out.Set(x, y, true)
			}
		}
	}
	return out
}

func sampleBilinear(src *image.RGBA, fx, fy float64) (r, g, b uint8) {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	clampX := func(x int) int {
		if x < 0 {
			return 0
		}
		if x >= w {
			return w - 1
		}
		return x
	}
	clampY := func(y int) int {
		if y < 0 {
			return 0
		}
		if y >= h {
			return h - 1
		}
		return y
	}

	i00 := src.PixOffset(clampX(x0), clampY(y0))
	i10 := src.PixOffset(clampX(x0+1), clampY(y0))
	i01 := src.PixOffset(clampX(x0), clampY(y0+1))
	i11 := src.PixOffset(clampX(x0+1), clampY(y0+1))

	mix := func(ch int) uint8 {
		top := float64(src.Pix[i00+ch])*(1-tx) + float64(src.Pix[i10+ch])*tx
		bot := float64(src.Pix[i01+ch])*(1-tx) + float64(src.Pix[i11+ch])*tx
		return uint8(math.Round(top*(1-ty) + bot*ty))
	}
	return mix(0), mix(1), mix(2)
}

// Package preprocess performs white balance and colorspace derivation.
// It is the first pipeline stage; everything downstream consumes its
// artifacts instead of the raw capture.
package preprocess

import (
	"image"
	"math"

	"github.com/ericboehlke/Resistor-Reader/internal/raster"
	"github.com/ericboehlke/Resistor-Reader/pkg/colorutil"
)

// Artifacts holds the preprocessed image and its derived colorspaces.
// All three share pixel indexing with the input raster.
type Artifacts struct {
	Balanced *image.RGBA   // white-balanced RGB
	Lab      *raster.Image3 // OpenCV 8-bit Lab convention
	HSV      *raster.Image3 // H 0-180, S 0-255, V 0-255
}

// Preprocess white-balances the capture and derives the Lab and HSV
// representations used by the later stages.
func Preprocess(img image.Image) *Artifacts {
	balanced := GrayWorld(raster.ToRGBA(img))
	return &Artifacts{
		Balanced: balanced,
		Lab:      ToLab(balanced),
		HSV:      ToHSV(balanced),
	}
}

// GrayWorld returns a white-balanced copy of the image. Each channel is
// scaled so the channel means converge on their common gray value, then
// clipped to [0, 255]. A channel whose mean is zero is left untouched so
// degenerate all-dark input passes through unchanged.
func GrayWorld(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	total := float64(w * h)
	if total == 0 {
		return img
	}

	var sumR, sumG, sumB float64
	for y := 0; y < h; y++ {
		row := img.PixOffset(0, y)
		for x := 0; x < w; x++ {
			i := row + x*4
			sumR += float64(img.Pix[i])
			sumG += float64(img.Pix[i+1])
			sumB += float64(img.Pix[i+2])
		}
	}

	meanR := sumR / total
	meanG := sumG / total
	meanB := sumB / total
	gray := (meanR + meanG + meanB) / 3

	scale := func(mean float64) float64 {
		if mean == 0 {
			return 1
		}
		return gray / mean
	}
	sr, sg, sb := scale(meanR), scale(meanG), scale(meanB)

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := img.PixOffset(0, y)
		dst := out.PixOffset(0, y)
		for x := 0; x < w; x++ {
			i, j := src+x*4, dst+x*4
			out.Pix[j] = clipByte(float64(img.Pix[i]) * sr)
			out.Pix[j+1] = clipByte(float64(img.Pix[i+1]) * sg)
			out.Pix[j+2] = clipByte(float64(img.Pix[i+2]) * sb)
			out.Pix[j+3] = 255
		}
	}
	return out
}

// ToLab converts an RGB image to the Lab raster.
func ToLab(img *image.RGBA) *raster.Image3 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := raster.NewImage3(w, h)
	for y := 0; y < h; y++ {
		row := img.PixOffset(0, y)
		for x := 0; x < w; x++ {
			i := row + x*4
			l, a, bb := colorutil.RGBToLab(float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2]))
			out.Set(x, y, uint8(math.Round(l)), uint8(math.Round(a)), uint8(math.Round(bb)))
		}
	}
	return out
}

// ToHSV converts an RGB image to the HSV raster.
func ToHSV(img *image.RGBA) *raster.Image3 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := raster.NewImage3(w, h)
	for y := 0; y < h; y++ {
		row := img.PixOffset(0, y)
		for x := 0; x < w; x++ {
			i := row + x*4
			hh, s, v := colorutil.RGBToHSV(float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2]))
			out.Set(x, y, uint8(math.Round(hh)), uint8(math.Round(s)), uint8(math.Round(v)))
		}
	}
	return out
}

func clipByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

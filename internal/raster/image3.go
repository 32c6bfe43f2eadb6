package raster

import (
	"image"
	"image/draw"
)

// Image3 is a packed H x W x 3 byte raster used for derived colorspaces
// (HSV, Lab) where the stdlib image types do not apply.
type Image3 struct {
	W, H int
	Pix  []uint8 // len == W*H*3, row-major, 3 bytes per pixel
}

// NewImage3 allocates a zeroed raster of the given size.
func NewImage3(w, h int) *Image3 {
	return &Image3{W: w, H: h, Pix: make([]uint8, w*h*3)}
}

// At returns the three channel values at (x, y).
func (p *Image3) At(x, y int) (c0, c1, c2 uint8) {
	i := (y*p.W + x) * 3
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2]
}

// Set stores the three channel values at (x, y).
func (p *Image3) Set(x, y int, c0, c1, c2 uint8) {
	i := (y*p.W + x) * 3
	p.Pix[i] = c0
	p.Pix[i+1] = c1
	p.Pix[i+2] = c2
}

// ToRGBA normalizes any image to *image.RGBA with the origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

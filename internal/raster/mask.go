// Package raster provides the pixel-grid primitives shared by the pipeline
// stages: binary masks with morphology, and a packed 3-channel byte image
// for derived colorspaces.
package raster

import (
	"image"
	"image/color"

	"github.com/ericboehlke/Resistor-Reader/pkg/geometry"
)

// Mask is a binary foreground mask with the same indexing as its source
// image. Bits are stored row-major.
type Mask struct {
	W, H int
	bits []bool
}

// NewMask creates an all-background mask of the given size.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, bits: make([]bool, w*h)}
}

// At reports whether (x, y) is foreground. Out-of-bounds is background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.bits[y*m.W+x]
}

// Set marks (x, y) as foreground or background.
func (m *Mask) Set(x, y int, v bool) {
	m.bits[y*m.W+x] = v
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	out := NewMask(m.W, m.H)
	copy(out.bits, m.bits)
	return out
}

// Points returns the coordinates of all foreground pixels in row-major order.
func (m *Mask) Points() []geometry.PointInt {
	pts := make([]geometry.PointInt, 0, 256)
	for y := 0; y < m.H; y++ {
		row := y * m.W
		for x := 0; x < m.W; x++ {
			if m.bits[row+x] {
				pts = append(pts, geometry.PointInt{X: x, Y: y})
			}
		}
	}
	return pts
}

// Open performs one morphological opening (erosion then dilation) with a
// full 3x3 structuring neighborhood, removing isolated noise pixels.
func (m *Mask) Open() *Mask {
	return m.erode().dilate()
}

// erode keeps a pixel only if its full 3x3 neighborhood is foreground.
// Pixels outside the image count as foreground so the border is not
// eaten away by the structuring element overhang.
func (m *Mask) erode() *Mask {
	out := NewMask(m.W, m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if !m.bits[y*m.W+x] {
				continue
			}
			keep := true
			for dy := -1; dy <= 1 && keep; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= m.W || ny >= m.H {
						continue
					}
					if !m.bits[ny*m.W+nx] {
						keep = false
						break
					}
				}
			}
			out.bits[y*m.W+x] = keep
		}
	}
	return out
}

// dilate marks a pixel if any of its 3x3 neighborhood is foreground.
func (m *Mask) dilate() *Mask {
	out := NewMask(m.W, m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if !m.bits[y*m.W+x] {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= m.W || ny >= m.H {
						continue
					}
					out.bits[ny*m.W+nx] = true
				}
			}
		}
	}
	return out
}

// ToImage renders the mask as a grayscale image for debug snapshots.
func (m *Mask) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.bits[y*m.W+x] {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

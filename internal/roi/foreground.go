package roi

import (
	"fmt"
	"sort"

	"github.com/ericboehlke/Resistor-Reader/internal/raster"
	"github.com/ericboehlke/Resistor-Reader/pkg/colorutil"
)

// ForegroundMask separates the resistor from the background. The background
// hue is estimated as the median hue of the image border; a pixel is
// foreground when its hue is far enough from that estimate, it is saturated
// enough, and it is not near-white. A single morphological opening removes
// isolated noise pixels.
func ForegroundMask(hsv *raster.Image3, opts ForegroundOptions) (*raster.Mask, error) {
	if hsv.W < 2 || hsv.H < 2 {
		return nil, fmt.Errorf("image %dx%d too small: %w", hsv.W, hsv.H, ErrNoForeground)
	}

	bgHue := borderMedianHue(hsv)

	mask := raster.NewMask(hsv.W, hsv.H)
	for y := 0; y < hsv.H; y++ {
		for x := 0; x < hsv.W; x++ {
			h, s, v := hsv.At(x, y)
			if colorutil.HueDistance(float64(h), bgHue) > opts.HueDelta &&
				s > opts.MinSaturation &&
				v < opts.MaxValue {
				mask.Set(x, y, true)
			}
		}
	}

	mask = mask.Open()
	if mask.Count() == 0 {
		return nil, fmt.Errorf("segmentation produced an empty mask: %w", ErrNoForeground)
	}
	return mask, nil
}

// borderMedianHue returns the median hue over the outermost rows and
// columns, which are assumed to be background.
func borderMedianHue(hsv *raster.Image3) float64 {
	hues := make([]uint8, 0, 2*hsv.W+2*hsv.H)
	for x := 0; x < hsv.W; x++ {
		h, _, _ := hsv.At(x, 0)
		hues = append(hues, h)
		h, _, _ = hsv.At(x, hsv.H-1)
		hues = append(hues, h)
	}
	for y := 0; y < hsv.H; y++ {
		h, _, _ := hsv.At(0, y)
		hues = append(hues, h)
		h, _, _ = hsv.At(hsv.W-1, y)
		hues = append(hues, h)
	}
	sort.Slice(hues, func(i, j int) bool { return hues[i] < hues[j] })
	return float64(hues[len(hues)/2])
}

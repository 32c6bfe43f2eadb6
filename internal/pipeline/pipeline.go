// Package pipeline sequences the resistor-reading stages: preprocess,
// region-of-interest extraction, band segmentation and classification, and
// value resolution. Each stage reads immutable inputs and produces new
// outputs, so independent runs may execute concurrently.
package pipeline

import (
	"image"

	"github.com/ericboehlke/Resistor-Reader/internal/bands"
	"github.com/ericboehlke/Resistor-Reader/internal/config"
	"github.com/ericboehlke/Resistor-Reader/internal/preprocess"
	"github.com/ericboehlke/Resistor-Reader/internal/resolve"
	"github.com/ericboehlke/Resistor-Reader/internal/roi"
	"github.com/ericboehlke/Resistor-Reader/internal/snapshot"
)

// Decode converts one photograph of an axial resistor into its resistance
// in ohms. Stage failures surface unchanged so callers can discriminate
// them with errors.Is; no stage is retried. The recorder receives debug
// snapshots for the stages enabled in cfg.Debug and may be nil.
func Decode(img image.Image, cfg config.Config, rec snapshot.Recorder) (float64, error) {
	if rec == nil {
		rec = snapshot.Discard{}
	}

	art := preprocess.Preprocess(img)
	if cfg.Debug.Preprocess {
		rec.Save("pre", art.Balanced)
	}

	mask, err := roi.ForegroundMask(art.HSV, cfg.Foreground)
	if err != nil {
		return 0, err
	}

	shape, err := roi.Extract(art.Balanced, mask, cfg.ROI)
	if err != nil {
		return 0, err
	}
	if cfg.Debug.ROI {
		rec.Save("roi_mask", shape.Mask.ToImage())
		rec.Save("roi", shape.Crop)
	}

	colors, segments, flipped, err := bands.SegmentAndClassify(shape.Crop, cfg.Bands)
	if err != nil {
		return 0, err
	}
	if cfg.Debug.Bands {
		rec.Save("bands", bands.RenderOverlay(shape.Crop, segments, colors, flipped))
	}

	labels := make([]string, len(colors))
	for i, c := range colors {
		labels[i] = string(c)
	}
	return resolve.Resolve(labels)
}

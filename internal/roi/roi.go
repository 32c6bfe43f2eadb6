// Package roi isolates the resistor body from its background and produces
// an axis-aligned, leadless crop: foreground segmentation against the
// border hue, largest-component extraction, distance-transform lead
// removal, principal-axis alignment and a quad warp of the oriented box.
package roi

import (
	"errors"
)

// ErrNoForeground is returned when background/foreground separation yields
// an empty mask, or lead removal strips every pixel.
var ErrNoForeground = errors.New("no foreground found")

// ForegroundOptions configures foreground segmentation.
type ForegroundOptions struct {
	// HueDelta is the minimum circular hue distance from the background
	// hue, on the 0-180 scale.
	HueDelta float64 `yaml:"hue_delta"`
	// MinSaturation rejects washed-out pixels (0-255).
	MinSaturation uint8 `yaml:"min_saturation"`
	// MaxValue rejects near-white background pixels that pass the hue and
	// saturation tests (0-255).
	MaxValue uint8 `yaml:"max_value"`
}

// DefaultForegroundOptions returns the thresholds tuned for a white
// background under the reader's lamp.
func DefaultForegroundOptions() ForegroundOptions {
	return ForegroundOptions{
		HueDelta:      15,
		MinSaturation: 30,
		MaxValue:      220,
	}
}

// ExtractOptions configures shape extraction.
type ExtractOptions struct {
	// LeadDistance is the distance-transform threshold in pixels. Pixels
	// closer than this to the background are stripped, which removes the
	// thin wire leads but keeps the thicker body.
	LeadDistance float64 `yaml:"lead_distance"`
	// Padding is the margin added around the crop, in pixels.
	Padding int `yaml:"padding"`
}

// DefaultExtractOptions returns extraction defaults sized for 640x480
// captures, where the body is roughly 8-12 px thick.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		LeadDistance: 3.0,
		Padding:      2,
	}
}

//go:build !gocv
// +build !gocv

package hardware

import (
	"context"
	"errors"
	"image"
)

// Webcam is the no-OpenCV stand-in. Builds without the gocv tag can still
// run every file-camera mode; opening a real device reports an error.
type Webcam struct{}

// OpenWebcam reports that webcam capture is unavailable in this build.
func OpenWebcam(device, width, height int) (*Webcam, error) {
	return nil, errors.New("webcam capture requires the gocv build tag")
}

// Capture is never reachable in a stub build.
func (w *Webcam) Capture(ctx context.Context) (image.Image, error) {
	return nil, errors.New("webcam capture requires the gocv build tag")
}

// Close is a no-op.
func (w *Webcam) Close() error { return nil }

//go:build gocv
// +build gocv

package hardware

import (
	"context"
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Webcam captures frames from a V4L2/USB camera through OpenCV.
type Webcam struct {
	cap *gocv.VideoCapture
}

// OpenWebcam opens the camera at the given device index and requests the
// capture resolution.
func OpenWebcam(device, width, height int) (*Webcam, error) {
	cap, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}
	cap.Set(gocv.VideoCaptureFrameWidth, float64(width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(height))
	return &Webcam{cap: cap}, nil
}

// Capture grabs a single frame.
func (w *Webcam) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat := gocv.NewMat()
	defer mat.Close()

	if ok := w.cap.Read(&mat); !ok || mat.Empty() {
		return nil, errors.New("camera returned no frame")
	}
	return mat.ToImage()
}

// Close releases the device.
func (w *Webcam) Close() error {
	return w.cap.Close()
}

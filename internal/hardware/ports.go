// Package hardware defines the appliance's device boundaries: the camera,
// the operator trigger and the value display. The reading pipeline never
// touches these directly; main wires them together.
package hardware

import (
	"context"
	"image"
)

// Camera captures a single RGB frame per request.
type Camera interface {
	Capture(ctx context.Context) (image.Image, error)
	Close() error
}

// Display shows short status or value text, like the reader's
// four-character segment display.
type Display interface {
	Print(text string)
	Clear()
}

// Trigger waits for the operator's button press and drives the
// illumination lamp around a capture.
type Trigger interface {
	WaitForPress(ctx context.Context) error
	SetLamp(on bool)
}

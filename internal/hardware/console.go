package hardware

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// ConsoleDisplay mimics the segment display on standard output.
type ConsoleDisplay struct{}

// Print shows a short status or value string.
func (ConsoleDisplay) Print(text string) {
	fmt.Printf("[display] %s\n", text)
}

// Clear blanks the display.
func (ConsoleDisplay) Clear() {}

// StdinTrigger substitutes the hardware button with the enter key. The
// lamp is a no-op; bench setups have room light.
type StdinTrigger struct {
	r *bufio.Reader
}

// NewStdinTrigger creates a trigger reading from standard input.
func NewStdinTrigger() *StdinTrigger {
	return &StdinTrigger{r: bufio.NewReader(os.Stdin)}
}

// WaitForPress blocks until the operator hits enter or the context ends.
func (t *StdinTrigger) WaitForPress(ctx context.Context) error {
	fmt.Print("press enter to capture... ")
	done := make(chan error, 1)
	go func() {
		_, err := t.r.ReadString('\n')
		done <- err
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err == io.EOF {
			return io.EOF
		}
		return err
	}
}

// SetLamp is a no-op on the console.
func (t *StdinTrigger) SetLamp(on bool) {}

// AutoTrigger fires immediately on every wait, for unattended batch runs
// over a file camera.
type AutoTrigger struct{}

// WaitForPress returns as soon as the context allows.
func (AutoTrigger) WaitForPress(ctx context.Context) error { return ctx.Err() }

// SetLamp is a no-op.
func (AutoTrigger) SetLamp(on bool) {}

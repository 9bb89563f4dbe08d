//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealRelay drives an output line on a GPIO character device.
type RealRelay struct {
	line *gpiocdev.Line
	pin  int
}

// NewRealRelay requests pin on chip as an output, initially Low.
func NewRealRelay(chip string, pin int) (*RealRelay, error) {
	line, err := gpiocdev.RequestLine(chip, pin, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request relay pin %d on %s: %w", pin, chip, err)
	}
	return &RealRelay{line: line, pin: pin}, nil
}

// Set drives the line.
func (r *RealRelay) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := r.line.SetValue(v); err != nil {
		return fmt.Errorf("set relay pin %d: %w", r.pin, err)
	}
	return nil
}

// Close drives the line Low, then returns it to an input with pull-down
// (the Pi boot default) so the relay board stays off across restarts.
func (r *RealRelay) Close() error {
	if r.line == nil {
		return nil
	}
	var errs []error
	if err := r.line.SetValue(0); err != nil {
		errs = append(errs, fmt.Errorf("drive pin %d low: %w", r.pin, err))
	}
	if err := r.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure pin %d: %w", r.pin, err))
	}
	if err := r.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close pin %d: %w", r.pin, err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

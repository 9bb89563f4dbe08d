// Package gpio drives the relay outputs.
// The real implementation uses the Linux GPIO character device;
// the fake records writes for tests.
package gpio

// Relay is a single digital output.
type Relay interface {
	// Set drives the line High (on) or Low.
	Set(on bool) error

	// Close releases the line, leaving it Low.
	Close() error
}

// Pin defaults (BCM numbering).
const (
	DefaultChip          = "gpiochip0"
	DefaultPinMaster     = 16
	DefaultPinCompressor = 17
)

package sensor

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultIIOPath is the first channel of the first industrial-I/O ADC.
const DefaultIIOPath = "/sys/bus/iio/devices/iio:device0/in_voltage0_raw"

// IIOADC reads raw codes from a Linux IIO sysfs attribute.
type IIOADC struct {
	path string
}

// NewIIOADC returns an ADC backed by the sysfs file at path.
func NewIIOADC(path string) *IIOADC {
	if path == "" {
		path = DefaultIIOPath
	}
	return &IIOADC{path: path}
}

// ReadRaw triggers a single conversion by reading the attribute.
func (a *IIOADC) ReadRaw() (int, error) {
	b, err := os.ReadFile(a.path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", a.path, err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", a.path, err)
	}
	return v, nil
}

package sensor

import (
	"errors"
	"sync"
)

// FakeADC returns scripted raw codes. Once exhausted it repeats the last one.
type FakeADC struct {
	mu      sync.Mutex
	Codes   []int
	index   int
	ReadErr error
}

// NewFakeADC creates a FakeADC with the given codes.
func NewFakeADC(codes ...int) *FakeADC {
	return &FakeADC{Codes: codes}
}

// ReadRaw returns the next scripted code.
func (f *FakeADC) ReadRaw() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return 0, f.ReadErr
	}
	if len(f.Codes) == 0 {
		return 0, errors.New("no codes configured")
	}
	v := f.Codes[f.index]
	if f.index < len(f.Codes)-1 {
		f.index++
	}
	return v, nil
}

// Set replaces the script with a single repeating code.
func (f *FakeADC) Set(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Codes = []int{code}
	f.index = 0
}

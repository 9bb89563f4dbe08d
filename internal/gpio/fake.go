package gpio

import "sync"

// FakeRelay records every write for test assertions.
type FakeRelay struct {
	mu sync.Mutex

	// Writes holds each value passed to Set, in order.
	Writes []bool

	// SetError, if set, is returned by Set and the level is left unchanged.
	SetError error

	on     bool
	closed bool
}

// NewFakeRelay creates a FakeRelay in the Low state.
func NewFakeRelay() *FakeRelay {
	return &FakeRelay{}
}

// Set records the write.
func (f *FakeRelay) Set(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetError != nil {
		return f.SetError
	}
	f.Writes = append(f.Writes, on)
	f.on = on
	return nil
}

// On reports the current level.
func (f *FakeRelay) On() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.on
}

// Close drives the line Low and marks it closed.
func (f *FakeRelay) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.on = false
	f.closed = true
	return nil
}

// Closed reports whether Close was called.
func (f *FakeRelay) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// FailWith sets or clears the error returned by Set.
func (f *FakeRelay) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetError = err
}

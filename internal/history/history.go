// Package history keeps a fixed number of recent temperature samples.
package history

import (
	"fmt"

	"icecream_controller/internal/models"
)

// DefaultCapacity is 100 samples, a little under an hour at 30 s spacing.
const DefaultCapacity = 100

// History is a fixed-capacity ring of samples that overwrites the oldest
// entry once full. Not safe for concurrent use; the owner synchronises.
type History struct {
	buf   []models.TempSample
	head  int // next write position
	count int
}

// New returns an empty history. A non-positive capacity uses DefaultCapacity.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{buf: make([]models.TempSample, capacity)}
}

// Append stores s, overwriting the oldest sample when full.
func (h *History) Append(s models.TempSample) {
	h.buf[h.head] = s
	h.head = (h.head + 1) % len(h.buf)
	if h.count < len(h.buf) {
		h.count++
	}
}

// Count reports the number of valid samples.
func (h *History) Count() int {
	return h.count
}

// Capacity reports the fixed size of the ring.
func (h *History) Capacity() int {
	return len(h.buf)
}

// Get returns the i-th sample, oldest first. It panics when i is out of
// range; callers iterate over [0, Count()).
func (h *History) Get(i int) models.TempSample {
	if i < 0 || i >= h.count {
		panic(fmt.Sprintf("history: index %d out of range [0,%d)", i, h.count))
	}
	start := (h.head - h.count + len(h.buf)) % len(h.buf)
	return h.buf[(start+i)%len(h.buf)]
}

// Latest returns the newest sample, if any.
func (h *History) Latest() (models.TempSample, bool) {
	if h.count == 0 {
		return models.TempSample{}, false
	}
	return h.Get(h.count - 1), true
}

// Snapshot copies the samples, oldest first.
func (h *History) Snapshot() []models.TempSample {
	out := make([]models.TempSample, h.count)
	for i := range out {
		out[i] = h.Get(i)
	}
	return out
}

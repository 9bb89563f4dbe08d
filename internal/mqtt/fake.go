package mqtt

import (
	"sync"

	"icecream_controller/internal/models"
)

// FakePublisher records what was published, for tests.
type FakePublisher struct {
	mu       sync.Mutex
	statuses []models.Status
	events   []models.CompressorEvent
	closed   bool

	// PublishError, if set, is returned by both publish methods.
	PublishError error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) PublishStatus(status models.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *FakePublisher) PublishEvent(event models.CompressorEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}
	f.events = append(f.events, event)
	return nil
}

func (f *FakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *FakePublisher) Statuses() []models.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Status(nil), f.statuses...)
}

func (f *FakePublisher) Events() []models.CompressorEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.CompressorEvent(nil), f.events...)
}

func (f *FakePublisher) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

package service

import (
	"context"
	"time"

	"icecream_controller/internal/logger"
	"icecream_controller/internal/metrics"
	"icecream_controller/internal/models"
	"icecream_controller/internal/mqtt"
	"icecream_controller/internal/repository"
)

const (
	DefaultEventBuffer = 64
	eventWriteTimeout  = 5 * time.Second
)

// EventRecorder writes events to the event log and MQTT from its own
// goroutine so the control loop never waits on I/O.
type EventRecorder struct {
	repo    repository.EventRepo
	pub     mqtt.Publisher
	metrics *metrics.Metrics
	log     *logger.Logger
	ch      chan models.CompressorEvent
}

func NewEventRecorder(repo repository.EventRepo, pub mqtt.Publisher, m *metrics.Metrics, log *logger.Logger, buffer int) *EventRecorder {
	if pub == nil {
		pub = mqtt.Discard{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	return &EventRecorder{
		repo:    repo,
		pub:     pub,
		metrics: m,
		log:     log,
		ch:      make(chan models.CompressorEvent, buffer),
	}
}

// Record queues e, dropping it if the buffer is full.
func (r *EventRecorder) Record(e models.CompressorEvent) {
	select {
	case r.ch <- e:
	default:
		r.metrics.PersistenceError("event")
		r.log.Warnw("event_dropped", "type", e.Type, "event_id", e.EventID)
	}
}

// Run delivers queued events until ctx is done, then flushes what is left.
func (r *EventRecorder) Run(ctx context.Context) {
	for {
		select {
		case e := <-r.ch:
			r.deliver(e)
		case <-ctx.Done():
			r.flush()
			return
		}
	}
}

func (r *EventRecorder) flush() {
	for {
		select {
		case e := <-r.ch:
			r.deliver(e)
		default:
			return
		}
	}
}

func (r *EventRecorder) deliver(e models.CompressorEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), eventWriteTimeout)
	defer cancel()

	if err := r.repo.Append(ctx, e); err != nil {
		r.metrics.PersistenceError("event")
		r.log.Errorw("event_append_failed", "type", e.Type, "err", err)
	}
	if err := r.pub.PublishEvent(e); err != nil {
		r.log.Warnw("event_publish_failed", "type", e.Type, "err", err)
	}
}

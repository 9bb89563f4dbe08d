// Package mqtt publishes controller status and events to an MQTT broker.
package mqtt

import (
	"encoding/json"
	"time"

	"icecream_controller/internal/models"
)

// Topic suffixes under the configured prefix.
const (
	TopicStatus = "status"
	TopicEvents = "events"
)

// Publisher sends telemetry. Failures are returned to the caller and must
// never affect the control loop.
type Publisher interface {
	PublishStatus(status models.Status) error
	PublishEvent(event models.CompressorEvent) error
	Close() error
}

// StatusPayload wraps a status snapshot with a wall-clock timestamp.
type StatusPayload struct {
	Timestamp string        `json:"timestamp"`
	Status    models.Status `json:"status"`
}

// EventPayload is the wire form of a compressor event.
type EventPayload struct {
	ID          string `json:"id"`
	Timestamp   string `json:"timestamp"`
	Event       string `json:"event"`
	Description string `json:"description,omitempty"`
	Metadata    any    `json:"metadata,omitempty"`
}

func FormatStatusPayload(status models.Status, now time.Time) ([]byte, error) {
	return json.Marshal(StatusPayload{
		Timestamp: now.UTC().Format(time.RFC3339),
		Status:    status,
	})
}

func FormatEventPayload(event models.CompressorEvent) ([]byte, error) {
	return json.Marshal(EventPayload{
		ID:          event.EventID,
		Timestamp:   event.OccurredAt.UTC().Format(time.RFC3339),
		Event:       event.Type,
		Description: event.Description,
		Metadata:    event.Metadata,
	})
}

func topic(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	return prefix + "/" + suffix
}

// Discard is used when no broker is configured.
type Discard struct{}

func (Discard) PublishStatus(models.Status) error { return nil }
func (Discard) PublishEvent(models.CompressorEvent) error { return nil }
func (Discard) Close() error { return nil }

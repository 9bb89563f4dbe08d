package models

import "time"

// Event types written to the compressor event log.
const (
	EventStart           = "START"
	EventStop            = "STOP"
	EventAutoStop        = "AUTO_STOP"
	EventTargetChange    = "TARGET_CHANGE"
	EventSensorFault     = "SENSOR_FAULT"
	EventSensorRecovered = "SENSOR_RECOVERED"
	EventRelayFault      = "RELAY_FAULT"
)

// CompressorEvent is a single log entry.
type CompressorEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"icecream_controller/internal/models"
	"icecream_controller/internal/repository"
)

// Filter errors. Handlers map these to 400.
var (
	ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	ErrUnknownEventType = errors.New("unknown event type")
)

var eventTypes = map[string]bool{
	models.EventStart:           true,
	models.EventStop:            true,
	models.EventAutoStop:        true,
	models.EventTargetChange:    true,
	models.EventSensorFault:     true,
	models.EventSensorRecovered: true,
	models.EventRelayFault:      true,
}

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// normalize converts bounds to UTC and canonicalises the type filter.
func (f LogFilter) normalize() (LogFilter, error) {
	if !f.From.IsZero() {
		f.From = f.From.UTC()
	}
	if !f.To.IsZero() {
		f.To = f.To.UTC()
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return LogFilter{}, ErrInvalidTimeRange
	}

	f.Type = strings.ToUpper(strings.TrimSpace(f.Type))
	if f.Type != "" && !eventTypes[f.Type] {
		return LogFilter{}, fmt.Errorf("%w: %q", ErrUnknownEventType, f.Type)
	}
	return f, nil
}

// List returns matching events, oldest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.CompressorEvent, error) {
	f, err := f.normalize()
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, f.From, f.To, f.Type)
}

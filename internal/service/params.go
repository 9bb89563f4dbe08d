package service

import (
	"time"

	"icecream_controller/internal/models"
)

// StartParams are the /start form fields. A nil field keeps the saved
// setting.
type StartParams struct {
	UseTimer     *bool
	TimerMinutes *uint
}

// TimerParams sets both timer fields.
func TimerParams(useTimer bool, minutes uint) StartParams {
	return StartParams{UseTimer: &useTimer, TimerMinutes: &minutes}
}

// empty reports whether no field was supplied.
func (p StartParams) empty() bool {
	return p.UseTimer == nil && p.TimerMinutes == nil
}

// resolve overlays the supplied fields on s.
func (p StartParams) resolve(s models.Settings) models.Settings {
	if p.UseTimer != nil {
		s.UseTimer = *p.UseTimer
	}
	if p.TimerMinutes != nil {
		s.TimerMinutes = *p.TimerMinutes
	}
	return s
}

// LogFilter selects compressor events by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "START", "STOP", "AUTO_STOP", "TARGET_CHANGE", ...
}

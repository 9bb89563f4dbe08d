package models

// Default settings used when nothing has been persisted yet.
const (
	DefaultTargetTempC  = -5.0
	DefaultUseTimer     = false
	DefaultTimerMinutes = 0
)

// Settings is the persisted controller configuration.
type Settings struct {
	TargetTempC  float64 `json:"target_temp"`
	UseTimer     bool    `json:"use_timer"`
	TimerMinutes uint    `json:"timer_minutes"`
}

// DefaultSettings returns the factory configuration.
func DefaultSettings() Settings {
	return Settings{
		TargetTempC:  DefaultTargetTempC,
		UseTimer:     DefaultUseTimer,
		TimerMinutes: DefaultTimerMinutes,
	}
}

package models

// NoEstimate is reported in TimeToTarget when the forecast is indeterminate.
const NoEstimate = -1

// Status is the /status payload. Field names are part of the public contract
// consumed by the appliance web UI.
type Status struct {
	TempC            *float64 `json:"temp"` // nil on sensor fault
	SensorFault      bool     `json:"sensor_fault"`
	TargetTempC      float64  `json:"target_temp"`
	Compressor       bool     `json:"compressor"`
	UseTimer         bool     `json:"use_timer"`
	TimerMinutes     uint     `json:"timer_minutes"`
	TimeToTarget     int      `json:"time_to_target"`
	RemainingSeconds *int     `json:"remaining_seconds"`
}

package models

import "time"

// TempSample is one temperature reading. Elapsed is measured on the
// controller's monotonic clock from boot, not wall time.
type TempSample struct {
	Elapsed time.Duration
	TempC   float64
}

// Minutes returns the sample timestamp in minutes since boot.
func (s TempSample) Minutes() float64 {
	return s.Elapsed.Minutes()
}

// Reading is the wire form of a TempSample in /temp-history.
type Reading struct {
	TimeMs int64   `json:"time"` // ms since boot
	TempC  float64 `json:"temp"`
}

// History is the /temp-history payload.
type History struct {
	Readings []Reading `json:"readings"`
	Target   float64   `json:"target"`
}

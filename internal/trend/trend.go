// Package trend forecasts when the mix will reach its target temperature
// from a least-squares line through the most recent samples.
package trend

import (
	"math"

	"icecream_controller/internal/models"
)

const (
	// MinSamples is the smallest history that yields a forecast.
	MinSamples = 3
	// Window is how many of the newest samples feed the regression.
	Window = 10
	// SlopeThreshold in °C/min; anything at or above it is not cooling.
	SlopeThreshold = -0.01

	etaEpsilon = 1e-9
)

// Series is an oldest-first sequence of samples.
type Series interface {
	Count() int
	Get(i int) models.TempSample
}

// Samples adapts a slice to Series.
type Samples []models.TempSample

// Count implements Series.
func (s Samples) Count() int { return len(s) }

// Get implements Series.
func (s Samples) Get(i int) models.TempSample { return s[i] }

// Fit is an ordinary least-squares line temp = Slope*x + Intercept,
// with x in minutes relative to the newest sample in the window.
type Fit struct {
	Slope     float64
	Intercept float64
	N         int
}

// FitWindow regresses the newest min(Window, Count) samples. ok is false
// when there are fewer than two samples or every timestamp is identical.
func FitWindow(s Series) (Fit, bool) {
	count := s.Count()
	n := count
	if n > Window {
		n = Window
	}
	if n < 2 {
		return Fit{}, false
	}

	ref := s.Get(count - 1).Minutes()
	var sumX, sumY, sumXY, sumX2 float64
	for i := count - n; i < count; i++ {
		sm := s.Get(i)
		x := sm.Minutes() - ref
		y := sm.TempC
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	fn := float64(n)
	den := fn*sumX2 - sumX*sumX
	if den <= 0 {
		return Fit{}, false
	}
	slope := (fn*sumXY - sumX*sumY) / den
	intercept := (sumY - slope*sumX) / fn
	if math.IsNaN(slope) || math.IsInf(slope, 0) || math.IsNaN(intercept) {
		return Fit{}, false
	}
	return Fit{Slope: slope, Intercept: intercept, N: n}, true
}

// Estimate returns whole minutes until the fitted line crosses target,
// measured from the newest sample. ok is false when the forecast is
// indeterminate: too few samples, degenerate timestamps, not cooling fast
// enough, or the target already reached.
func Estimate(s Series, target float64) (minutes int, ok bool) {
	if s.Count() < MinSamples {
		return 0, false
	}
	fit, ok := FitWindow(s)
	if !ok || fit.Slope >= SlopeThreshold {
		return 0, false
	}

	// x is relative to the newest sample, so the crossing time is the ETA.
	eta := (target - fit.Intercept) / fit.Slope
	if !(eta > 0) || math.IsInf(eta, 0) {
		return 0, false
	}
	// Whole minutes, truncated; under a minute is not reported. etaEpsilon
	// absorbs float error on exact crossings.
	m := int(math.Floor(eta + etaEpsilon))
	if m < 1 {
		return 0, false
	}
	return m, true
}

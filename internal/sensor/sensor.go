// Package sensor converts raw NTC thermistor ADC codes into Celsius.
//
// The thermistor sits in a divider with a fixed series resistor; the
// divider voltage is sampled by an ADC and converted with the
// single-coefficient (beta) form of the Steinhart-Hart equation.
package sensor

import (
	"errors"
	"fmt"
	"math"
)

// KelvinOffset converts between Kelvin and Celsius.
const KelvinOffset = 273.15

// ErrSensorFault is returned when the divider voltage cannot belong to a
// connected thermistor (open or shorted) or the ADC cannot be read.
var ErrSensorFault = errors.New("sensor fault")

// ADC yields raw conversion codes.
type ADC interface {
	ReadRaw() (int, error)
}

// Calibration holds the divider and thermistor constants.
type Calibration struct {
	ADCMax        float64 // full-scale code, 4095 for 12 bit
	VRef          float64 // volts
	SeriesOhms    float64
	Beta          float64
	NominalOhms   float64 // resistance at NominalKelvin
	NominalKelvin float64
}

// DefaultCalibration matches a 10k B3435 NTC on a 12-bit 3.3 V ADC.
func DefaultCalibration() Calibration {
	return Calibration{
		ADCMax:        4095,
		VRef:          3.3,
		SeriesOhms:    10000,
		Beta:          3435,
		NominalOhms:   10000,
		NominalKelvin: 298.15,
	}
}

// Thermistor converts between raw codes and temperature.
type Thermistor struct {
	cal Calibration
}

// NewThermistor returns a converter for the given calibration.
func NewThermistor(cal Calibration) *Thermistor {
	return &Thermistor{cal: cal}
}

// Celsius converts a raw ADC code. Voltages outside (0, VRef) are faults.
func (t *Thermistor) Celsius(raw int) (float64, error) {
	c := t.cal
	voltage := float64(raw) * c.VRef / c.ADCMax
	if !(voltage > 0 && voltage < c.VRef) {
		return 0, fmt.Errorf("%w: divider voltage %.3fV (raw %d)", ErrSensorFault, voltage, raw)
	}
	resistance := c.SeriesOhms * (c.VRef/voltage - 1)
	invT := 1/c.NominalKelvin + math.Log(resistance/c.NominalOhms)/c.Beta
	tempK := 1 / invT
	if invT <= 0 || math.IsNaN(tempK) || math.IsInf(tempK, 0) {
		return 0, fmt.Errorf("%w: resistance %.1f ohm out of range", ErrSensorFault, resistance)
	}
	return tempK - KelvinOffset, nil
}

// Raw returns the ADC code the divider would produce at tempC.
func (t *Thermistor) Raw(tempC float64) int {
	c := t.cal
	tempK := tempC + KelvinOffset
	if tempK <= 0 {
		return int(c.ADCMax)
	}
	resistance := c.NominalOhms * math.Exp(c.Beta*(1/tempK-1/c.NominalKelvin))
	raw := math.Round(c.ADCMax * c.SeriesOhms / (resistance + c.SeriesOhms))
	return int(math.Max(0, math.Min(c.ADCMax, raw)))
}

// Reader samples an ADC and reports Celsius.
type Reader struct {
	adc   ADC
	therm *Thermistor
}

// NewReader builds a Reader over adc.
func NewReader(adc ADC, cal Calibration) *Reader {
	return &Reader{adc: adc, therm: NewThermistor(cal)}
}

// Read performs one conversion. Any failure wraps ErrSensorFault.
func (r *Reader) Read() (float64, error) {
	raw, err := r.adc.ReadRaw()
	if err != nil {
		return 0, fmt.Errorf("%w: read adc: %w", ErrSensorFault, err)
	}
	return r.therm.Celsius(raw)
}

package service

import (
	"context"
	"math"
	"sync"
	"time"

	"icecream_controller/internal/config"
	"icecream_controller/internal/gpio"
	"icecream_controller/internal/sensor"
)

// PlantSimulator models the freezer bowl so the service runs without
// hardware. It is the ADC behind the sensor reader and the sink for both
// relays. The bowl relaxes exponentially toward FloorC while both relays
// are on and toward AmbientC otherwise.
type PlantSimulator struct {
	mu    sync.Mutex
	cfg   config.SimulatorConfig
	therm *sensor.Thermistor

	tempC      float64
	master     bool
	compressor bool
}

// NewPlantSimulator starts the bowl at cfg.StartTempC.
func NewPlantSimulator(cfg config.SimulatorConfig, cal sensor.Calibration) *PlantSimulator {
	return &PlantSimulator{
		cfg:   cfg,
		therm: sensor.NewThermistor(cal),
		tempC: cfg.StartTempC,
	}
}

// ReadRaw implements sensor.ADC.
func (p *PlantSimulator) ReadRaw() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.therm.Raw(p.tempC), nil
}

// MasterRelay and CompressorRelay implement gpio.Relay against the model.
func (p *PlantSimulator) MasterRelay() gpio.Relay     { return &plantRelay{p: p, master: true} }
func (p *PlantSimulator) CompressorRelay() gpio.Relay { return &plantRelay{p: p} }

// Cooling reports whether both relays are on.
func (p *PlantSimulator) Cooling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.master && p.compressor
}

func (p *PlantSimulator) Temperature() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tempC
}

// Advance moves the model forward by elapsed.
func (p *PlantSimulator) Advance(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	toward, rate := p.cfg.AmbientC, p.cfg.WarmPerMin
	if p.master && p.compressor {
		toward, rate = p.cfg.FloorC, p.cfg.CoolPerMin
	}
	p.tempC = toward + (p.tempC-toward)*math.Exp(-rate*elapsed.Minutes())
}

// Run advances the model on every cfg.Tick until ctx is canceled.
func (p *PlantSimulator) Run(ctx context.Context) {
	t := time.NewTicker(p.cfg.Tick)
	defer t.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			p.Advance(now.Sub(last))
			last = now
		}
	}
}

type plantRelay struct {
	p      *PlantSimulator
	master bool
}

func (r *plantRelay) Set(on bool) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()
	if r.master {
		r.p.master = on
	} else {
		r.p.compressor = on
	}
	return nil
}

func (r *plantRelay) Close() error {
	return r.Set(false)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"icecream_controller/internal/compressor"
	"icecream_controller/internal/history"
	"icecream_controller/internal/logger"
	"icecream_controller/internal/metrics"
	"icecream_controller/internal/models"
	"icecream_controller/internal/repository"
	"icecream_controller/internal/trend"

	"github.com/google/uuid"
)

// Accepted command ranges.
const (
	MinTargetC      = -50.0
	MaxTargetC      = 50.0
	MaxTimerMinutes = 24 * 60
)

// Validation errors. Handlers map these to 400.
var (
	ErrInvalidTarget = errors.New("invalid target temperature")
	ErrInvalidTimer  = errors.New("invalid timer duration")
)

// TemperatureReader is the sensor as seen by the controller.
type TemperatureReader interface {
	Read() (float64, error)
}

// EventSink accepts events without blocking the caller.
type EventSink interface {
	Record(e models.CompressorEvent)
}

// ControllerDeps configures a ControllerService. Events, Metrics and Log
// are optional.
type ControllerDeps struct {
	Machine         *compressor.Machine
	Reader          TemperatureReader
	Settings        repository.SettingsRepo
	Events          EventSink
	Metrics         *metrics.Metrics
	Log             *logger.Logger
	HistoryCapacity int
	Now             func() time.Time
}

// ControllerService owns the compressor, settings and temperature history.
// mu guards all three and is held only for in-memory work and the relay
// writes a transition performs. Persistence and event delivery happen
// after it is released.
type ControllerService struct {
	machine *compressor.Machine
	reader  TemperatureReader
	store   repository.SettingsRepo
	events  EventSink
	metrics *metrics.Metrics
	log     *logger.Logger
	now     func() time.Time
	boot    time.Time

	mu          sync.Mutex
	hist        *history.History
	settings    models.Settings
	sensorFault bool
	relayFault  bool

	// saveMu orders settings writes so the last save holds the latest state.
	saveMu sync.Mutex
}

func NewControllerService(d ControllerDeps) *ControllerService {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.HistoryCapacity <= 0 {
		d.HistoryCapacity = history.DefaultCapacity
	}
	return &ControllerService{
		machine:  d.Machine,
		reader:   d.Reader,
		store:    d.Settings,
		events:   d.Events,
		metrics:  d.Metrics,
		log:      d.Log,
		now:      d.Now,
		boot:     d.Now(),
		hist:     history.New(d.HistoryCapacity),
		settings: models.DefaultSettings(),
	}
}

// Boot loads persisted settings and drives both relays Low. A load failure
// leaves the defaults in place; a relay failure is retried by Tick.
func (c *ControllerService) Boot(ctx context.Context) error {
	s, err := c.store.Load(ctx)
	if err != nil {
		c.log.Errorw("settings_load_failed", "err", err)
		s = models.DefaultSettings()
	}

	c.mu.Lock()
	c.settings = s
	relayErr := c.machine.Init()
	newFault, _ := c.noteRelayLocked()
	c.mu.Unlock()

	c.log.Infow("controller_booted",
		"target_temp", s.TargetTempC,
		"use_timer", s.UseTimer,
		"timer_minutes", s.TimerMinutes,
	)
	if relayErr != nil {
		c.relayFailed(relayErr, newFault, c.now())
		return fmt.Errorf("init relays: %w", relayErr)
	}
	return nil
}

// Start switches the compressor on. Fields missing from p are taken from
// the current settings; supplied ones are persisted. Starting while running
// re-arms the countdown from now.
func (c *ControllerService) Start(ctx context.Context, p StartParams) error {
	if p.TimerMinutes != nil && *p.TimerMinutes > MaxTimerMinutes {
		return fmt.Errorf("%w: %d minutes exceeds %d", ErrInvalidTimer, *p.TimerMinutes, MaxTimerMinutes)
	}
	now := c.now()

	c.mu.Lock()
	c.settings = p.resolve(c.settings)
	useTimer, minutes := c.settings.UseTimer, c.settings.TimerMinutes
	tr := c.machine.Start(now, useTimer, minutes)
	newFault, recovered := c.noteRelayLocked()
	c.mu.Unlock()

	c.log.Infow("compressor_started", "use_timer", useTimer, "timer_minutes", minutes, "rearmed", tr.Rearmed)
	c.afterRelay(tr.RelayErr, newFault, recovered, now)
	c.record(ctx, now, models.EventStart, "Compressor started", map[string]any{
		"use_timer":     useTimer,
		"timer_minutes": minutes,
		"rearmed":       tr.Rearmed,
	})
	if !p.empty() {
		c.persist(ctx)
	}
	return nil
}

// Stop switches the compressor off. Stopping an idle compressor is a no-op
// apart from re-driving the relays Low.
func (c *ControllerService) Stop(ctx context.Context) error {
	now := c.now()

	c.mu.Lock()
	tr := c.machine.Stop()
	newFault, recovered := c.noteRelayLocked()
	c.mu.Unlock()

	c.afterRelay(tr.RelayErr, newFault, recovered, now)
	if tr.Changed() {
		c.log.Infow("compressor_stopped")
		c.record(ctx, now, models.EventStop, "Compressor stopped", nil)
	}
	return nil
}

// Tick enforces the auto-stop timer and retries failed relay writes.
func (c *ControllerService) Tick() {
	now := c.now()

	c.mu.Lock()
	_, minutes := c.machine.Timer()
	tr := c.machine.Tick(now)
	newFault, recovered := c.noteRelayLocked()
	c.mu.Unlock()

	c.afterRelay(tr.RelayErr, newFault, recovered, now)
	if tr.AutoStop {
		c.metrics.AutoStop()
		c.log.Infow("compressor_auto_stopped", "timer_minutes", minutes)
		c.record(context.Background(), now, models.EventAutoStop, "Timer elapsed; compressor stopped", map[string]any{
			"timer_minutes": minutes,
		})
	}
}

// Sample reads the sensor and appends a good reading to the history.
// Faulty readings are never stored.
func (c *ControllerService) Sample() (float64, error) {
	temp, err := c.reader.Read()
	now := c.now()

	c.mu.Lock()
	wasFault := c.sensorFault
	c.sensorFault = err != nil
	if err == nil {
		c.hist.Append(models.TempSample{Elapsed: now.Sub(c.boot), TempC: temp})
	}
	c.mu.Unlock()

	switch {
	case err != nil:
		c.metrics.SensorFault()
		if !wasFault {
			c.log.Warnw("sensor_fault", "err", err)
			c.record(context.Background(), now, models.EventSensorFault, "Sensor reading rejected", map[string]any{"error": err.Error()})
		}
		return 0, err
	case wasFault:
		c.log.Infow("sensor_recovered", "temp", temp)
		c.record(context.Background(), now, models.EventSensorRecovered, "Sensor readings valid again", map[string]any{"temp": temp})
	}
	return temp, nil
}

// ReadStatus reads the sensor and snapshots controller state.
func (c *ControllerService) ReadStatus(_ context.Context) models.Status {
	temp, err := c.reader.Read()
	now := c.now()

	c.mu.Lock()
	st := models.Status{
		TargetTempC:  c.settings.TargetTempC,
		Compressor:   c.machine.Running(),
		UseTimer:     c.settings.UseTimer,
		TimerMinutes: c.settings.TimerMinutes,
		TimeToTarget: models.NoEstimate,
	}
	if eta, ok := trend.Estimate(c.hist, c.settings.TargetTempC); ok {
		st.TimeToTarget = eta
	}
	if rem, ok := c.machine.RemainingSeconds(now); ok {
		st.RemainingSeconds = &rem
	}
	c.mu.Unlock()

	if err != nil {
		st.SensorFault = true
	} else {
		t := math.Round(temp*10) / 10
		st.TempC = &t
	}
	c.metrics.ObserveStatus(st)
	return st
}

// GetHistory returns the buffered readings oldest first.
func (c *ControllerService) GetHistory(_ context.Context) models.History {
	c.mu.Lock()
	samples := c.hist.Snapshot()
	target := c.settings.TargetTempC
	c.mu.Unlock()

	readings := make([]models.Reading, len(samples))
	for i, s := range samples {
		readings[i] = models.Reading{TimeMs: s.Elapsed.Milliseconds(), TempC: s.TempC}
	}
	return models.History{Readings: readings, Target: target}
}

// SetTarget changes and persists the target temperature. It does not touch
// an armed timer.
func (c *ControllerService) SetTarget(ctx context.Context, targetC float64) error {
	if math.IsNaN(targetC) || math.IsInf(targetC, 0) || targetC < MinTargetC || targetC > MaxTargetC {
		return fmt.Errorf("%w: %v outside [%v, %v]", ErrInvalidTarget, targetC, MinTargetC, MaxTargetC)
	}
	now := c.now()

	c.mu.Lock()
	prev := c.settings.TargetTempC
	c.settings.TargetTempC = targetC
	c.mu.Unlock()

	c.log.Infow("target_changed", "from", prev, "to", targetC)
	c.record(ctx, now, models.EventTargetChange, "Target temperature changed", map[string]any{
		"from": prev,
		"to":   targetC,
	})
	c.persist(ctx)
	return nil
}

// GetSettings returns what is persisted, which may lag the in-memory
// settings after a failed save.
func (c *ControllerService) GetSettings(ctx context.Context) (models.Settings, error) {
	return c.store.Load(ctx)
}

// Settings returns the in-memory settings.
func (c *ControllerService) Settings() models.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// persist writes the current settings. Saves are serialised and each
// reads the settings under mu, so a slow earlier save can't overwrite a
// later one.
func (c *ControllerService) persist(ctx context.Context) {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.Lock()
	s := c.settings
	c.mu.Unlock()

	if err := c.store.Save(context.WithoutCancel(ctx), s); err != nil {
		c.metrics.PersistenceError("settings")
		c.log.Errorw("settings_save_failed", "err", err)
	}
}

// noteRelayLocked tracks relay fault edges. Caller holds mu.
func (c *ControllerService) noteRelayLocked() (newFault, recovered bool) {
	fault := c.machine.RelayFault()
	newFault = fault && !c.relayFault
	recovered = !fault && c.relayFault
	c.relayFault = fault
	return newFault, recovered
}

func (c *ControllerService) afterRelay(err error, newFault, recovered bool, now time.Time) {
	if err != nil {
		c.relayFailed(err, newFault, now)
	}
	if recovered {
		c.log.Infow("relay_recovered")
	}
}

func (c *ControllerService) relayFailed(err error, newFault bool, now time.Time) {
	c.metrics.RelayError()
	if !newFault {
		return
	}
	c.log.Errorw("relay_write_failed", "err", err)
	c.record(context.Background(), now, models.EventRelayFault, "Relay write failed; retrying", map[string]any{"error": err.Error()})
}

// record hands an event to the sink. Commands issued under WithOperator
// carry the operator in their metadata.
func (c *ControllerService) record(ctx context.Context, now time.Time, typ, desc string, meta map[string]any) {
	if c.events == nil {
		return
	}
	if name, ok := OperatorFrom(ctx); ok {
		if meta == nil {
			meta = map[string]any{}
		}
		meta["operator"] = name
	}
	ev := models.CompressorEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now.UTC(),
		Type:        typ,
		Description: desc,
	}
	if meta != nil {
		ev.Metadata = meta
	}
	c.events.Record(ev)
}

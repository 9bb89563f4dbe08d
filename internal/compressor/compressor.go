// Package compressor is the on/off state machine for the refrigeration
// compressor and its optional auto-stop timer.
//
// The machine owns both relay outputs: a master relay feeding the
// compressor circuit and the compressor relay itself. Relay levels are
// High exactly while the machine is Running. A Machine is not safe for
// concurrent use; the owner serialises calls.
package compressor

import (
	"errors"
	"fmt"
	"time"

	"icecream_controller/internal/gpio"
)

// State of the compressor.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Running:
		return "RUNNING"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Transition describes what a command did.
type Transition struct {
	From     State
	To       State
	Rearmed  bool  // Start while already Running
	AutoStop bool  // Tick stopped an expired timer
	RelayErr error // a relay write failed; retried on the next Tick
}

// Changed reports whether the state moved.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Machine is the compressor controller.
type Machine struct {
	master     gpio.Relay
	compressor gpio.Relay

	state        State
	startedAt    time.Time
	timerActive  bool
	timerMinutes uint

	// relayDirty is set when the last drive failed and the lines may not
	// match state.
	relayDirty bool
}

// New returns an Idle machine. Call Init to force both relays Low.
func New(master, compressor gpio.Relay) *Machine {
	return &Machine{master: master, compressor: compressor}
}

// Init drives both relays Low.
func (m *Machine) Init() error {
	m.state = Idle
	return m.drive(false)
}

// Start switches the compressor on. Calling Start while Running re-arms:
// the countdown restarts from now with the new timer parameters.
func (m *Machine) Start(now time.Time, useTimer bool, minutes uint) Transition {
	tr := Transition{From: m.state, To: Running, Rearmed: m.state == Running}
	m.state = Running
	m.startedAt = now
	m.timerActive = useTimer
	m.timerMinutes = minutes
	tr.RelayErr = m.drive(true)
	return tr
}

// Stop switches the compressor off. Stopping while Idle re-drives the
// relays Low and reports no state change.
func (m *Machine) Stop() Transition {
	tr := Transition{From: m.state, To: Idle}
	m.state = Idle
	m.timerActive = false
	tr.RelayErr = m.drive(false)
	return tr
}

// Tick checks the timer at now and stops the compressor once the armed
// duration has fully elapsed. It also retries a failed relay write.
func (m *Machine) Tick(now time.Time) Transition {
	tr := Transition{From: m.state, To: m.state}
	if m.relayDirty {
		tr.RelayErr = m.drive(m.state == Running)
	}
	if m.state != Running || !m.timerActive {
		return tr
	}
	if m.elapsed(now) < time.Duration(m.timerMinutes)*time.Minute {
		return tr
	}
	stop := m.Stop()
	stop.AutoStop = true
	if stop.RelayErr == nil {
		stop.RelayErr = tr.RelayErr
	}
	return stop
}

// RemainingSeconds is defined only while Running with an armed timer.
func (m *Machine) RemainingSeconds(now time.Time) (int, bool) {
	if m.state != Running || !m.timerActive {
		return 0, false
	}
	total := int64(m.timerMinutes) * 60
	elapsed := int64(m.elapsed(now) / time.Second)
	if elapsed >= total {
		return 0, true
	}
	return int(total - elapsed), true
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Running reports whether the compressor is on.
func (m *Machine) Running() bool {
	return m.state == Running
}

// Timer returns the armed timer, meaningful while Running.
func (m *Machine) Timer() (active bool, minutes uint) {
	return m.timerActive, m.timerMinutes
}

// StartedAt returns when the current run began.
func (m *Machine) StartedAt() time.Time {
	return m.startedAt
}

// RelayFault reports whether the relay lines may not match State.
func (m *Machine) RelayFault() bool {
	return m.relayDirty
}

func (m *Machine) elapsed(now time.Time) time.Duration {
	d := now.Sub(m.startedAt)
	if d < 0 {
		return 0
	}
	return d
}

// drive sets both relays. Master leads on the way up and trails on the way down.
func (m *Machine) drive(on bool) error {
	order := []gpio.Relay{m.compressor, m.master}
	if on {
		order = []gpio.Relay{m.master, m.compressor}
	}
	var errs []error
	for _, r := range order {
		if r == nil {
			continue
		}
		if err := r.Set(on); err != nil {
			errs = append(errs, err)
		}
	}
	m.relayDirty = len(errs) > 0
	return errors.Join(errs...)
}

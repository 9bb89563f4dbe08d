package compressor

import (
	"errors"
	"testing"
	"time"

	"icecream_controller/internal/gpio"
)

var t0 = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

func newMachine(t *testing.T) (*Machine, *gpio.FakeRelay, *gpio.FakeRelay) {
	t.Helper()
	master, comp := gpio.NewFakeRelay(), gpio.NewFakeRelay()
	m := New(master, comp)
	if err := m.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return m, master, comp
}

func assertRelays(t *testing.T, master, comp *gpio.FakeRelay, want bool) {
	t.Helper()
	if master.On() != want || comp.On() != want {
		t.Fatalf("relays master=%v compressor=%v, want both %v", master.On(), comp.On(), want)
	}
}

func TestInitDrivesRelaysLow(t *testing.T) {
	m, master, comp := newMachine(t)
	if m.State() != Idle {
		t.Fatalf("state=%v, want Idle", m.State())
	}
	assertRelays(t, master, comp, false)
	if len(master.Writes) != 1 || len(comp.Writes) != 1 {
		t.Fatalf("expected one write per relay, got %v %v", master.Writes, comp.Writes)
	}
}

func TestStartStop(t *testing.T) {
	m, master, comp := newMachine(t)

	tr := m.Start(t0, false, 0)
	if !tr.Changed() || tr.To != Running || tr.Rearmed {
		t.Fatalf("unexpected transition %+v", tr)
	}
	assertRelays(t, master, comp, true)

	tr = m.Stop()
	if !tr.Changed() || tr.To != Idle {
		t.Fatalf("unexpected transition %+v", tr)
	}
	assertRelays(t, master, comp, false)
}

func TestStopIsIdempotent(t *testing.T) {
	m, master, comp := newMachine(t)
	for i := 0; i < 3; i++ {
		tr := m.Stop()
		if tr.Changed() {
			t.Fatalf("stop #%d changed state: %+v", i, tr)
		}
	}
	assertRelays(t, master, comp, false)
}

func TestRelayOrdering(t *testing.T) {
	var order []string
	master := &recordingRelay{name: "master", log: &order}
	comp := &recordingRelay{name: "compressor", log: &order}
	m := New(master, comp)

	m.Start(t0, false, 0)
	m.Stop()

	want := []string{"master:on", "compressor:on", "compressor:off", "master:off"}
	if len(order) != len(want) {
		t.Fatalf("order=%v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order=%v, want %v", order, want)
		}
	}
}

func TestTimerBoundary(t *testing.T) {
	m, master, comp := newMachine(t)
	m.Start(t0, true, 5)

	// Every tick strictly before minute 5 leaves it running.
	for s := 0; s < 5*60; s += 7 {
		tr := m.Tick(t0.Add(time.Duration(s) * time.Second))
		if tr.AutoStop || !m.Running() {
			t.Fatalf("stopped early at %ds", s)
		}
	}
	if tr := m.Tick(t0.Add(5*time.Minute - time.Nanosecond)); tr.AutoStop {
		t.Fatal("stopped one nanosecond early")
	}
	assertRelays(t, master, comp, true)

	tr := m.Tick(t0.Add(5 * time.Minute))
	if !tr.AutoStop || tr.To != Idle || tr.From != Running {
		t.Fatalf("expected auto-stop at the boundary, got %+v", tr)
	}
	assertRelays(t, master, comp, false)

	writes := len(comp.Writes)
	for i := 1; i <= 3; i++ {
		if tr := m.Tick(t0.Add(5*time.Minute + time.Duration(i)*time.Second)); tr.AutoStop || tr.Changed() {
			t.Fatalf("second auto-stop reported: %+v", tr)
		}
	}
	if len(comp.Writes) != writes {
		t.Fatalf("idle ticks must not touch relays")
	}
}

func TestLateTickStillStops(t *testing.T) {
	m, _, _ := newMachine(t)
	m.Start(t0, true, 5)
	if tr := m.Tick(t0.Add(17 * time.Minute)); !tr.AutoStop {
		t.Fatal("late tick must stop an expired timer")
	}
}

func TestNoTimerRunsIndefinitely(t *testing.T) {
	m, _, _ := newMachine(t)
	m.Start(t0, false, 5)
	if tr := m.Tick(t0.Add(48 * time.Hour)); tr.AutoStop || !m.Running() {
		t.Fatal("compressor without timer must keep running")
	}
	if _, ok := m.RemainingSeconds(t0.Add(time.Minute)); ok {
		t.Fatal("remaining must be undefined without a timer")
	}
}

func TestZeroMinuteTimerStopsOnFirstTick(t *testing.T) {
	m, _, _ := newMachine(t)
	m.Start(t0, true, 0)
	if tr := m.Tick(t0); !tr.AutoStop {
		t.Fatal("a zero-minute timer is already expired")
	}
}

func TestRestartRearmsCountdown(t *testing.T) {
	m, _, _ := newMachine(t)
	m.Start(t0, true, 5)

	restart := t0.Add(4 * time.Minute)
	tr := m.Start(restart, true, 5)
	if !tr.Rearmed || tr.Changed() {
		t.Fatalf("expected re-arm without state change, got %+v", tr)
	}
	if got := m.StartedAt(); !got.Equal(restart) {
		t.Fatalf("startedAt=%v, want %v", got, restart)
	}
	if tr := m.Tick(t0.Add(6 * time.Minute)); tr.AutoStop {
		t.Fatal("re-armed countdown stopped on the old schedule")
	}
	if tr := m.Tick(restart.Add(5 * time.Minute)); !tr.AutoStop {
		t.Fatal("re-armed countdown did not stop on the new schedule")
	}
}

func TestRemainingSeconds(t *testing.T) {
	m, _, _ := newMachine(t)
	if _, ok := m.RemainingSeconds(t0); ok {
		t.Fatal("remaining must be undefined while Idle")
	}

	m.Start(t0, true, 2)
	prev := 1 << 30
	for s := 0; s <= 150; s += 5 {
		got, ok := m.RemainingSeconds(t0.Add(time.Duration(s)*time.Second + 300*time.Millisecond))
		if !ok {
			t.Fatalf("remaining undefined at %ds", s)
		}
		want := 120 - s
		if want < 0 {
			want = 0
		}
		if got != want {
			t.Fatalf("at %ds: remaining=%d, want %d", s, got, want)
		}
		if got > prev {
			t.Fatalf("remaining increased at %ds", s)
		}
		prev = got
	}

	m.Tick(t0.Add(2 * time.Minute))
	if _, ok := m.RemainingSeconds(t0.Add(2 * time.Minute)); ok {
		t.Fatal("remaining must be undefined after auto-stop")
	}
}

func TestRelayFailureRetriedOnTick(t *testing.T) {
	m, master, comp := newMachine(t)
	comp.FailWith(errors.New("line busy"))

	tr := m.Start(t0, false, 0)
	if tr.RelayErr == nil || !m.RelayFault() {
		t.Fatalf("expected relay error, got %+v", tr)
	}
	if !m.Running() {
		t.Fatal("state must follow the command even when a relay write fails")
	}

	comp.FailWith(nil)
	tr = m.Tick(t0.Add(time.Second))
	if tr.RelayErr != nil || m.RelayFault() {
		t.Fatalf("retry should clear the fault, got %+v", tr)
	}
	assertRelays(t, master, comp, true)
}

type recordingRelay struct {
	name string
	log  *[]string
}

func (r *recordingRelay) Set(on bool) error {
	v := "off"
	if on {
		v = "on"
	}
	*r.log = append(*r.log, r.name+":"+v)
	return nil
}

func (r *recordingRelay) Close() error { return nil }

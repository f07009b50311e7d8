package pomodoro

import (
	"math"
	"testing"

	"github.com/julianstephens/tempo/internal/constants"
)

// runToZero ticks the running timer until a phase completes.
func runToZero(t *testing.T, timer *Timer) {
	t.Helper()
	for i := 0; i < 120*60; i++ {
		if timer.Tick() {
			return
		}
	}
	t.Fatal("countdown never reached zero")
}

func TestFourCyclePhaseSequence(t *testing.T) {
	timer := New(DefaultConfig(), Stats{})
	timer.Toggle()

	wantPhases := []constants.Phase{
		constants.PhaseBreak,
		constants.PhaseWork,
		constants.PhaseBreak,
		constants.PhaseWork,
		constants.PhaseBreak,
		constants.PhaseWork,
		constants.PhaseLongBreak,
	}

	for i, want := range wantPhases {
		runToZero(t, timer)
		if got := timer.Phase(); got != want {
			t.Fatalf("transition %d: phase = %v, want %v", i, got, want)
		}
	}

	stats := timer.Stats()
	if stats.CompletedCount != 4 {
		t.Errorf("CompletedCount = %d, want 4", stats.CompletedCount)
	}
	wantHours := 4.0 * 25.0 / 60.0
	if math.Abs(stats.TotalFocusHours-wantHours) > 1e-9 {
		t.Errorf("TotalFocusHours = %v, want %v", stats.TotalFocusHours, wantHours)
	}
}

func TestTickDoesNothingWhilePaused(t *testing.T) {
	timer := New(DefaultConfig(), Stats{})

	before := timer.Remaining()
	if timer.Tick() {
		t.Error("Tick() on a paused timer reported a phase completion")
	}
	if timer.Remaining() != before {
		t.Errorf("Remaining changed while paused: %d -> %d", before, timer.Remaining())
	}
}

func TestToggleKeepsPhaseAndRemaining(t *testing.T) {
	timer := New(DefaultConfig(), Stats{})
	timer.Toggle()
	timer.Tick()
	timer.Tick()

	remaining := timer.Remaining()
	timer.Toggle()

	if timer.Running() {
		t.Error("Running() = true after pause")
	}
	if timer.Phase() != constants.PhaseWork {
		t.Errorf("Phase() = %v, want work", timer.Phase())
	}
	if timer.Remaining() != remaining {
		t.Errorf("Remaining() = %d, want %d", timer.Remaining(), remaining)
	}
}

func TestResetRestoresFullDurationAndStops(t *testing.T) {
	timer := New(DefaultConfig(), Stats{})
	timer.Toggle()
	timer.Tick()
	timer.Tick()

	timer.Reset()

	if timer.Running() {
		t.Error("Running() = true after reset")
	}
	if got, want := timer.Remaining(), 25*60; got != want {
		t.Errorf("Remaining() = %d, want %d", got, want)
	}
}

func TestSwitchStopsAndLoadsTargetDuration(t *testing.T) {
	timer := New(DefaultConfig(), Stats{})
	timer.Toggle()

	timer.Switch(constants.PhaseLongBreak)

	if timer.Running() {
		t.Error("Running() = true after switch")
	}
	if timer.Phase() != constants.PhaseLongBreak {
		t.Errorf("Phase() = %v, want longBreak", timer.Phase())
	}
	if got, want := timer.Remaining(), 15*60; got != want {
		t.Errorf("Remaining() = %d, want %d", got, want)
	}
}

func TestConfigChangeAppliesOnNextReset(t *testing.T) {
	timer := New(DefaultConfig(), Stats{})
	timer.Toggle()
	timer.Tick()

	cfg := DefaultConfig()
	cfg.WorkMin = 50
	if err := timer.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig() failed: %v", err)
	}

	// The running countdown is untouched.
	if got := timer.Remaining(); got != 25*60-1 {
		t.Errorf("Remaining() = %d, want %d (unchanged)", got, 25*60-1)
	}

	timer.Reset()
	if got, want := timer.Remaining(), 50*60; got != want {
		t.Errorf("Remaining() after reset = %d, want %d", got, want)
	}
}

func TestBreakAlwaysReturnsToWork(t *testing.T) {
	cfg := Config{WorkMin: 1, BreakMin: 1, LongBreakMin: 1, CyclesBeforeLongBreak: 2}
	timer := New(cfg, Stats{})
	timer.Toggle()

	runToZero(t, timer) // work -> break
	if timer.Phase() != constants.PhaseBreak {
		t.Fatalf("Phase() = %v, want break", timer.Phase())
	}

	runToZero(t, timer) // break -> work
	if timer.Phase() != constants.PhaseWork {
		t.Errorf("Phase() = %v, want work", timer.Phase())
	}

	runToZero(t, timer) // work -> long break (2nd completion)
	if timer.Phase() != constants.PhaseLongBreak {
		t.Fatalf("Phase() = %v, want longBreak", timer.Phase())
	}

	runToZero(t, timer) // long break -> work
	if timer.Phase() != constants.PhaseWork {
		t.Errorf("Phase() = %v, want work after long break", timer.Phase())
	}
}

func TestSetConfigRejectsOutOfBounds(t *testing.T) {
	timer := New(DefaultConfig(), Stats{})

	bad := DefaultConfig()
	bad.WorkMin = 0
	if err := timer.SetConfig(bad); err == nil {
		t.Error("SetConfig with zero work duration should fail")
	}

	bad = DefaultConfig()
	bad.CyclesBeforeLongBreak = 11
	if err := timer.SetConfig(bad); err == nil {
		t.Error("SetConfig with too many cycles should fail")
	}
}

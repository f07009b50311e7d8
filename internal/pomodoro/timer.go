// Package pomodoro implements the work/break/long-break countdown cycle and
// its persisted configuration and lifetime stats.
package pomodoro

import (
	"fmt"

	"github.com/julianstephens/tempo/internal/constants"
)

// Config holds the phase durations in minutes and the number of completed
// work phases between long breaks.
type Config struct {
	WorkMin               int `json:"work_min"`
	BreakMin              int `json:"break_min"`
	LongBreakMin          int `json:"long_break_min"`
	CyclesBeforeLongBreak int `json:"cycles_before_long_break"`
}

func DefaultConfig() Config {
	return Config{
		WorkMin:               constants.DefaultWorkMin,
		BreakMin:              constants.DefaultBreakMin,
		LongBreakMin:          constants.DefaultLongBreakMin,
		CyclesBeforeLongBreak: constants.DefaultCyclesBeforeLongBreak,
	}
}

func (c Config) Validate() error {
	if c.WorkMin < 1 || c.WorkMin > constants.WorkMinMax {
		return fmt.Errorf("work duration must be between 1 and %d minutes", constants.WorkMinMax)
	}
	if c.BreakMin < 1 || c.BreakMin > constants.BreakMinMax {
		return fmt.Errorf("break duration must be between 1 and %d minutes", constants.BreakMinMax)
	}
	if c.LongBreakMin < 1 || c.LongBreakMin > constants.LongBreakMinMax {
		return fmt.Errorf("long break duration must be between 1 and %d minutes", constants.LongBreakMinMax)
	}
	if c.CyclesBeforeLongBreak < 1 || c.CyclesBeforeLongBreak > constants.CyclesMax {
		return fmt.Errorf("cycles before long break must be between 1 and %d", constants.CyclesMax)
	}
	return nil
}

// DurationSeconds returns the configured countdown length for a phase.
func (c Config) DurationSeconds(phase constants.Phase) int {
	switch phase {
	case constants.PhaseBreak:
		return c.BreakMin * 60
	case constants.PhaseLongBreak:
		return c.LongBreakMin * 60
	default:
		return c.WorkMin * 60
	}
}

// Stats accumulates across sessions.
type Stats struct {
	CompletedCount  int     `json:"completed_count"`
	TotalFocusHours float64 `json:"total_focus_hours"`
}

// Timer is the pomodoro state machine. It is driven by an external clock
// (the TUI's one-second tick) and is not safe for concurrent use; the
// owning event loop is its single caller.
type Timer struct {
	active  Config // durations the current countdown was started from
	pending Config // applied on the next reset or phase switch
	stats   Stats

	phase     constants.Phase
	remaining int
	running   bool
}

// New starts at Work with a full countdown. cfg and stats normally come
// from the Store.
func New(cfg Config, stats Stats) *Timer {
	return &Timer{
		active:    cfg,
		pending:   cfg,
		stats:     stats,
		phase:     constants.PhaseWork,
		remaining: cfg.DurationSeconds(constants.PhaseWork),
	}
}

func (t *Timer) Phase() constants.Phase { return t.phase }
func (t *Timer) Remaining() int         { return t.remaining }
func (t *Timer) Running() bool          { return t.running }
func (t *Timer) Stats() Stats           { return t.stats }

// Config returns the durations the next reset or phase switch will use.
func (t *Timer) Config() Config { return t.pending }

// PhaseDuration returns the full countdown length of the current phase, as
// started. Pending config changes do not affect it.
func (t *Timer) PhaseDuration() int { return t.active.DurationSeconds(t.phase) }

// Toggle starts or pauses the countdown without touching phase or
// remaining time.
func (t *Timer) Toggle() {
	t.running = !t.running
}

// Tick advances the countdown by one second. When it reaches zero the timer
// moves to the next phase and reports true; the countdown keeps running.
func (t *Timer) Tick() bool {
	if !t.running {
		return false
	}
	t.remaining--
	if t.remaining > 0 {
		return false
	}
	t.advance()
	return true
}

func (t *Timer) advance() {
	if t.phase == constants.PhaseWork {
		t.stats.CompletedCount++
		t.stats.TotalFocusHours += float64(t.active.WorkMin) / 60
		if t.stats.CompletedCount%t.active.CyclesBeforeLongBreak == 0 {
			t.phase = constants.PhaseLongBreak
		} else {
			t.phase = constants.PhaseBreak
		}
	} else {
		t.phase = constants.PhaseWork
	}
	t.remaining = t.active.DurationSeconds(t.phase)
}

// Reset stops the countdown and restores the current phase's full duration.
// A pending config change takes effect here.
func (t *Timer) Reset() {
	t.active = t.pending
	t.remaining = t.active.DurationSeconds(t.phase)
	t.running = false
}

// Switch stops the countdown and moves to the given phase with its full
// duration. A pending config change takes effect here.
func (t *Timer) Switch(phase constants.Phase) {
	t.active = t.pending
	t.phase = phase
	t.remaining = t.active.DurationSeconds(phase)
	t.running = false
}

// SetConfig stores new durations. They apply on the next reset or phase
// switch, never to a countdown already underway.
func (t *Timer) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	t.pending = cfg
	return nil
}

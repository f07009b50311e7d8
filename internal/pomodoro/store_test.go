package pomodoro

import (
	"testing"
)

func TestLoadConfigDefaultsWhenEmpty(t *testing.T) {
	store := NewStore(t.TempDir())

	cfg, err := store.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestConfigRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	want := Config{WorkMin: 50, BreakMin: 10, LongBreakMin: 30, CyclesBeforeLongBreak: 3}
	if err := store.SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig() failed: %v", err)
	}

	got, err := store.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadConfig() = %+v, want %+v", got, want)
	}
}

func TestSaveConfigRejectsInvalid(t *testing.T) {
	store := NewStore(t.TempDir())

	bad := Config{WorkMin: 0, BreakMin: 5, LongBreakMin: 15, CyclesBeforeLongBreak: 4}
	if err := store.SaveConfig(bad); err == nil {
		t.Error("SaveConfig with invalid config should fail")
	}
}

func TestStatsRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	// Missing stats read as zero values.
	stats, err := store.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats() failed: %v", err)
	}
	if stats != (Stats{}) {
		t.Errorf("LoadStats() on empty store = %+v, want zero", stats)
	}

	want := Stats{CompletedCount: 12, TotalFocusHours: 5.25}
	if err := store.SaveStats(want); err != nil {
		t.Fatalf("SaveStats() failed: %v", err)
	}

	got, err := store.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats() failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadStats() = %+v, want %+v", got, want)
	}
}

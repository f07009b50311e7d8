package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/tempo/internal/constants"
)

// Habit is a recurring practice tracked by percentage progress. A habit with
// progress 100 counts as completed; anything below is active.
type Habit struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Name      string              `json:"name"`
	Frequency constants.Frequency `json:"frequency"`
	Progress  int                 `json:"progress"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// HabitPatch is a partial update. Only non-nil fields are merged.
type HabitPatch struct {
	Name      *string              `json:"name,omitempty"`
	Frequency *constants.Frequency `json:"frequency,omitempty"`
	Progress  *int                 `json:"progress,omitempty"`
}

func (h *Habit) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if !constants.ValidFrequency(h.Frequency) {
		return fmt.Errorf("invalid frequency %q (expected daily, weekly, or monthly)", h.Frequency)
	}
	if h.Progress < constants.HabitProgressMin || h.Progress > constants.HabitProgressMax {
		return fmt.Errorf("habit progress must be between %d and %d", constants.HabitProgressMin, constants.HabitProgressMax)
	}
	return nil
}

func (p *HabitPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if p.Frequency != nil && !constants.ValidFrequency(*p.Frequency) {
		return fmt.Errorf("invalid frequency %q (expected daily, weekly, or monthly)", *p.Frequency)
	}
	if p.Progress != nil && (*p.Progress < constants.HabitProgressMin || *p.Progress > constants.HabitProgressMax) {
		return fmt.Errorf("habit progress must be between %d and %d", constants.HabitProgressMin, constants.HabitProgressMax)
	}
	return nil
}

// Completed reports whether the habit has reached full progress.
func (h *Habit) Completed() bool {
	return h.Progress == constants.HabitProgressComplete
}

package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/tempo/internal/constants"
)

// Routine is a named step in the user's day, optionally anchored to a
// clock time and recurrence frequency.
type Routine struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Name      string              `json:"name"`
	Time      string              `json:"time,omitempty"` // HH:MM format
	Completed bool                `json:"completed"`
	Frequency constants.Frequency `json:"frequency,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// RoutinePatch is a partial update. Only non-nil fields are merged.
type RoutinePatch struct {
	Name      *string              `json:"name,omitempty"`
	Time      *string              `json:"time,omitempty"`
	Completed *bool                `json:"completed,omitempty"`
	Frequency *constants.Frequency `json:"frequency,omitempty"`
}

func (r *Routine) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("routine name cannot be empty")
	}
	if r.Time != "" {
		if _, err := time.Parse(constants.TimeFormat, r.Time); err != nil {
			return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
		}
	}
	if r.Frequency != "" && !constants.ValidFrequency(r.Frequency) {
		return fmt.Errorf("invalid frequency %q (expected daily, weekly, or monthly)", r.Frequency)
	}
	return nil
}

func (p *RoutinePatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("routine name cannot be empty")
	}
	if p.Time != nil && *p.Time != "" {
		if _, err := time.Parse(constants.TimeFormat, *p.Time); err != nil {
			return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
		}
	}
	if p.Frequency != nil && *p.Frequency != "" && !constants.ValidFrequency(*p.Frequency) {
		return fmt.Errorf("invalid frequency %q (expected daily, weekly, or monthly)", *p.Frequency)
	}
	return nil
}

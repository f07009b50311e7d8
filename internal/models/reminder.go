package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/tempo/internal/constants"
)

// Reminder fires a local notification at a clock time on the selected
// weekdays. An empty Days set means the reminder applies every day.
type Reminder struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Name      string         `json:"name"`
	Time      string         `json:"time"` // HH:MM format
	Days      []time.Weekday `json:"days,omitempty"`
	Enabled   bool           `json:"enabled"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ReminderPatch is a partial update. Only non-nil fields are merged.
type ReminderPatch struct {
	Name    *string         `json:"name,omitempty"`
	Time    *string         `json:"time,omitempty"`
	Days    *[]time.Weekday `json:"days,omitempty"`
	Enabled *bool           `json:"enabled,omitempty"`
}

func (r *Reminder) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("reminder name cannot be empty")
	}
	if r.Time == "" {
		return fmt.Errorf("reminder time cannot be empty")
	}
	if _, err := time.Parse(constants.TimeFormat, r.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}
	return validateDays(r.Days)
}

func (p *ReminderPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("reminder name cannot be empty")
	}
	if p.Time != nil {
		if *p.Time == "" {
			return fmt.Errorf("reminder time cannot be empty")
		}
		if _, err := time.Parse(constants.TimeFormat, *p.Time); err != nil {
			return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
		}
	}
	if p.Days != nil {
		return validateDays(*p.Days)
	}
	return nil
}

func validateDays(days []time.Weekday) error {
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid weekday index %d (expected 0-6)", d)
		}
	}
	return nil
}

// DueOn reports whether the reminder applies on the given weekday. A
// reminder with no selected days applies every day.
func (r *Reminder) DueOn(day time.Weekday) bool {
	if len(r.Days) == 0 {
		return true
	}
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}

// NextOccurrence returns the next instant the reminder's clock time comes
// around, relative to now. If the time of day has already passed, the
// occurrence rolls to the same time tomorrow.
func (r *Reminder) NextOccurrence(now time.Time) (time.Time, error) {
	t, err := time.Parse(constants.TimeFormat, r.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	occurrence := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if !occurrence.After(now) {
		occurrence = occurrence.AddDate(0, 0, 1)
	}
	return occurrence, nil
}

package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/tempo/internal/constants"
)

// Task is a one-off or recurring to-do item, optionally grouped by category.
type Task struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Name      string              `json:"name"`
	Category  string              `json:"category,omitempty"`
	Frequency constants.Frequency `json:"frequency,omitempty"`
	Completed bool                `json:"completed"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// TaskPatch is a partial update. Only non-nil fields are merged.
type TaskPatch struct {
	Name      *string              `json:"name,omitempty"`
	Category  *string              `json:"category,omitempty"`
	Frequency *constants.Frequency `json:"frequency,omitempty"`
	Completed *bool                `json:"completed,omitempty"`
}

func (t *Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name cannot be empty")
	}
	if t.Frequency != "" && !constants.ValidFrequency(t.Frequency) {
		return fmt.Errorf("invalid frequency %q (expected daily, weekly, or monthly)", t.Frequency)
	}
	return nil
}

func (p *TaskPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("task name cannot be empty")
	}
	if p.Frequency != nil && *p.Frequency != "" && !constants.ValidFrequency(*p.Frequency) {
		return fmt.Errorf("invalid frequency %q (expected daily, weekly, or monthly)", *p.Frequency)
	}
	return nil
}

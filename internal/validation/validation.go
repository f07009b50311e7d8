package validation

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tempo/internal/models"
)

// ErrInvalid marks input rejected client-side, before any call reaches the
// remote store. Use errors.Is to distinguish it from gateway failures.
var ErrInvalid = errors.New("validation failed")

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}

// Habit checks a habit for client-side validity.
func Habit(h models.Habit) error {
	return invalid(h.Validate())
}

// HabitPatch checks a partial habit update for client-side validity.
func HabitPatch(p models.HabitPatch) error {
	return invalid(p.Validate())
}

// Routine checks a routine for client-side validity.
func Routine(r models.Routine) error {
	return invalid(r.Validate())
}

// RoutinePatch checks a partial routine update for client-side validity.
func RoutinePatch(p models.RoutinePatch) error {
	return invalid(p.Validate())
}

// Task checks a task for client-side validity.
func Task(t models.Task) error {
	return invalid(t.Validate())
}

// TaskPatch checks a partial task update for client-side validity.
func TaskPatch(p models.TaskPatch) error {
	return invalid(p.Validate())
}

// Reminder checks a reminder for client-side validity.
func Reminder(r models.Reminder) error {
	return invalid(r.Validate())
}

// ReminderPatch checks a partial reminder update for client-side validity.
func ReminderPatch(p models.ReminderPatch) error {
	return invalid(p.Validate())
}

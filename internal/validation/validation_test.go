package validation

import (
	"errors"
	"testing"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
)

func TestHabitValidation(t *testing.T) {
	tests := []struct {
		name    string
		habit   models.Habit
		wantErr bool
	}{
		{"valid", models.Habit{Name: "Read", Frequency: constants.FrequencyDaily}, false},
		{"full progress", models.Habit{Name: "Read", Frequency: constants.FrequencyWeekly, Progress: 100}, false},
		{"empty name", models.Habit{Frequency: constants.FrequencyDaily}, true},
		{"missing frequency", models.Habit{Name: "Read"}, true},
		{"bogus frequency", models.Habit{Name: "Read", Frequency: "hourly"}, true},
		{"progress too high", models.Habit{Name: "Read", Frequency: constants.FrequencyDaily, Progress: 101}, true},
		{"progress negative", models.Habit{Name: "Read", Frequency: constants.FrequencyDaily, Progress: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Habit(tt.habit)
			if (err != nil) != tt.wantErr {
				t.Errorf("Habit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Habit() error = %v, want wrapped ErrInvalid", err)
			}
		})
	}
}

func TestHabitPatchIgnoresNilFields(t *testing.T) {
	if err := HabitPatch(models.HabitPatch{}); err != nil {
		t.Errorf("HabitPatch(empty) error = %v, want nil", err)
	}

	bad := ""
	if err := HabitPatch(models.HabitPatch{Name: &bad}); err == nil {
		t.Error("HabitPatch with empty name should fail")
	}
}

func TestRoutineValidation(t *testing.T) {
	valid := models.Routine{Name: "Morning pages", Time: "07:30", Frequency: constants.FrequencyDaily}
	if err := Routine(valid); err != nil {
		t.Errorf("Routine() error = %v, want nil", err)
	}

	// Time and frequency are optional on routines.
	if err := Routine(models.Routine{Name: "Tidy desk"}); err != nil {
		t.Errorf("Routine() without time error = %v, want nil", err)
	}

	if err := Routine(models.Routine{Name: "Bad", Time: "25:99"}); err == nil {
		t.Error("Routine with malformed time should fail")
	}
}

func TestTaskValidation(t *testing.T) {
	if err := Task(models.Task{Name: "Ship release", Category: "work"}); err != nil {
		t.Errorf("Task() error = %v, want nil", err)
	}
	if err := Task(models.Task{Category: "work"}); err == nil {
		t.Error("Task with empty name should fail")
	}
	if err := Task(models.Task{Name: "X", Frequency: "fortnightly"}); err == nil {
		t.Error("Task with bogus frequency should fail")
	}
}

func TestReminderPatchValidation(t *testing.T) {
	goodTime := "18:00"
	if err := ReminderPatch(models.ReminderPatch{Time: &goodTime}); err != nil {
		t.Errorf("ReminderPatch() error = %v, want nil", err)
	}

	badTime := "6pm"
	if err := ReminderPatch(models.ReminderPatch{Time: &badTime}); err == nil {
		t.Error("ReminderPatch with malformed time should fail")
	}
}

package models

import (
	"testing"
	"time"
)

func TestReminderDueOnEmptyDaysAppliesEveryDay(t *testing.T) {
	r := Reminder{Name: "Stretch", Time: "09:00"}

	for d := time.Sunday; d <= time.Saturday; d++ {
		if !r.DueOn(d) {
			t.Errorf("DueOn(%v) = false, want true for reminder with no days", d)
		}
	}
}

func TestReminderDueOnSelectedDays(t *testing.T) {
	r := Reminder{
		Name: "Standup",
		Time: "09:00",
		Days: []time.Weekday{time.Monday, time.Wednesday},
	}

	tests := []struct {
		day  time.Weekday
		want bool
	}{
		{time.Sunday, false},
		{time.Monday, true},
		{time.Tuesday, false},
		{time.Wednesday, true},
		{time.Saturday, false},
	}

	for _, tt := range tests {
		if got := r.DueOn(tt.day); got != tt.want {
			t.Errorf("DueOn(%v) = %v, want %v", tt.day, got, tt.want)
		}
	}
}

func TestReminderNextOccurrenceLaterToday(t *testing.T) {
	r := Reminder{Name: "Water", Time: "15:30"}
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	got, err := r.NextOccurrence(now)
	if err != nil {
		t.Fatalf("NextOccurrence() failed: %v", err)
	}

	want := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NextOccurrence() = %v, want %v", got, want)
	}
}

func TestReminderNextOccurrenceRollsToTomorrow(t *testing.T) {
	r := Reminder{Name: "Water", Time: "08:00"}
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	got, err := r.NextOccurrence(now)
	if err != nil {
		t.Fatalf("NextOccurrence() failed: %v", err)
	}

	want := time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NextOccurrence() = %v, want %v", got, want)
	}
}

func TestReminderNextOccurrenceExactlyNowRollsToTomorrow(t *testing.T) {
	r := Reminder{Name: "Water", Time: "09:00"}
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	got, err := r.NextOccurrence(now)
	if err != nil {
		t.Fatalf("NextOccurrence() failed: %v", err)
	}

	if got.Day() != 11 {
		t.Errorf("NextOccurrence() at the exact fire instant = %v, want tomorrow", got)
	}
}

func TestReminderValidate(t *testing.T) {
	tests := []struct {
		name     string
		reminder Reminder
		wantErr  bool
	}{
		{"valid", Reminder{Name: "Water", Time: "08:00"}, false},
		{"valid with days", Reminder{Name: "Water", Time: "08:00", Days: []time.Weekday{time.Friday}}, false},
		{"empty name", Reminder{Time: "08:00"}, true},
		{"missing time", Reminder{Name: "Water"}, true},
		{"bad time format", Reminder{Name: "Water", Time: "8 o'clock"}, true},
		{"out of range day", Reminder{Name: "Water", Time: "08:00", Days: []time.Weekday{7}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reminder.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

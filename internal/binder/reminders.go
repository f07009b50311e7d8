package binder

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/tempo/internal/auth"
	"github.com/julianstephens/tempo/internal/gateway"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/notify"
	"github.com/julianstephens/tempo/internal/validation"
)

// Reminders is the live view of the signed-in user's reminders. Every
// snapshot re-derives the pending notification timers: all timers are
// cancelled, then each enabled reminder's next occurrence is scheduled.
type Reminders struct {
	core
	gw        gateway.Provider
	sched     *notify.Scheduler
	now       func() time.Time
	reminders []models.Reminder
}

func NewReminders(gw gateway.Provider, session *auth.Session, sched *notify.Scheduler) *Reminders {
	b := &Reminders{gw: gw, sched: sched, now: time.Now}
	b.init(session, b.subscribe, func() {
		b.reminders = nil
		sched.CancelAll()
	})
	return b
}

func (b *Reminders) subscribe(userID string) (gateway.Unsubscribe, error) {
	return b.gw.SubscribeReminders(userID, b.apply, b.subscriptionFailed)
}

func (b *Reminders) apply(reminders []models.Reminder) {
	b.mu.Lock()
	b.reminders = reminders
	b.errMsg = ""
	b.markReadyLocked()
	now := b.now()
	b.mu.Unlock()

	b.reschedule(reminders, now)
}

func (b *Reminders) reschedule(reminders []models.Reminder, now time.Time) {
	b.sched.CancelAll()
	for _, r := range reminders {
		if !r.Enabled {
			continue
		}
		occurrence, err := r.NextOccurrence(now)
		if err != nil {
			continue
		}
		// Every enabled reminder holds a timer: an occurrence landing on an
		// unselected weekday rolls forward to the next selected one. Day
		// indices are validated to 0-6, so a non-empty set always matches
		// within a week.
		for !r.DueOn(occurrence.Weekday()) {
			occurrence = occurrence.AddDate(0, 0, 1)
		}
		b.sched.Schedule(r.Name, fmt.Sprintf("Reminder for %s", r.Time), occurrence)
	}
}

// All returns the latest snapshot, earliest time first.
func (b *Reminders) All() []models.Reminder {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Reminder, len(b.reminders))
	copy(out, b.reminders)
	return out
}

// ForDay returns reminders that apply on the given weekday. Reminders with
// no selected days apply every day.
func (b *Reminders) ForDay(day time.Weekday) []models.Reminder {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Reminder, 0, len(b.reminders))
	for _, r := range b.reminders {
		if r.DueOn(day) {
			out = append(out, r)
		}
	}
	return out
}

// Today returns the reminders that apply today.
func (b *Reminders) Today() []models.Reminder {
	return b.ForDay(b.now().Weekday())
}

// Tomorrow returns the reminders that apply tomorrow.
func (b *Reminders) Tomorrow() []models.Reminder {
	return b.ForDay(b.now().AddDate(0, 0, 1).Weekday())
}

// Create adds a reminder for the signed-in user. New reminders start
// enabled.
func (b *Reminders) Create(ctx context.Context, name, timeStr string, days []time.Weekday) bool {
	b.clearError()
	userID := b.UserID()
	if userID == "" {
		b.storeError(notSignedIn)
		return false
	}

	reminder := models.Reminder{Name: name, Time: timeStr, Days: days, Enabled: true}
	if err := validation.Reminder(reminder); err != nil {
		b.storeError(err.Error())
		return false
	}

	if _, err := b.gw.CreateReminder(ctx, userID, reminder); err != nil {
		b.storeError(userMessage(err, "add reminder"))
		return false
	}
	return true
}

// Toggle flips a reminder's enabled state.
func (b *Reminders) Toggle(ctx context.Context, id string) bool {
	b.clearError()
	if b.UserID() == "" {
		b.storeError(notSignedIn)
		return false
	}

	current, ok := b.find(id)
	if !ok {
		b.storeError("Resource not found.")
		return false
	}

	next := !current.Enabled
	if err := b.gw.UpdateReminder(ctx, id, models.ReminderPatch{Enabled: &next}); err != nil {
		b.storeError(userMessage(err, "update reminder"))
		return false
	}
	return true
}

// Edit merges the non-nil fields of the patch into the reminder.
func (b *Reminders) Edit(ctx context.Context, id string, patch models.ReminderPatch) bool {
	b.clearError()
	if b.UserID() == "" {
		b.storeError(notSignedIn)
		return false
	}

	if err := validation.ReminderPatch(patch); err != nil {
		b.storeError(err.Error())
		return false
	}

	if err := b.gw.UpdateReminder(ctx, id, patch); err != nil {
		b.storeError(userMessage(err, "update reminder"))
		return false
	}
	return true
}

// Remove deletes a reminder.
func (b *Reminders) Remove(ctx context.Context, id string) bool {
	b.clearError()
	if b.UserID() == "" {
		b.storeError(notSignedIn)
		return false
	}

	if err := b.gw.DeleteReminder(ctx, id); err != nil {
		b.storeError(userMessage(err, "delete reminder"))
		return false
	}
	return true
}

func (b *Reminders) find(id string) (models.Reminder, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.reminders {
		if r.ID == id {
			return r, true
		}
	}
	return models.Reminder{}, false
}

package binder

import (
	"context"

	"github.com/julianstephens/tempo/internal/auth"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/gateway"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/validation"
)

// Habits is the live view of the signed-in user's habits.
type Habits struct {
	core
	gw     gateway.Provider
	habits []models.Habit
}

func NewHabits(gw gateway.Provider, session *auth.Session) *Habits {
	b := &Habits{gw: gw}
	b.init(session, b.subscribe, func() { b.habits = nil })
	return b
}

func (b *Habits) subscribe(userID string) (gateway.Unsubscribe, error) {
	return b.gw.SubscribeHabits(userID, b.apply, b.subscriptionFailed)
}

func (b *Habits) apply(habits []models.Habit) {
	b.mu.Lock()
	b.habits = habits
	b.errMsg = ""
	b.markReadyLocked()
	b.mu.Unlock()
}

// All returns the latest snapshot, newest first.
func (b *Habits) All() []models.Habit {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Habit, len(b.habits))
	copy(out, b.habits)
	return out
}

// Active returns habits still in progress.
func (b *Habits) Active() []models.Habit {
	return b.filter(func(h models.Habit) bool { return !h.Completed() })
}

// Completed returns habits that reached full progress.
func (b *Habits) Completed() []models.Habit {
	return b.filter(func(h models.Habit) bool { return h.Completed() })
}

func (b *Habits) filter(keep func(models.Habit) bool) []models.Habit {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Habit, 0, len(b.habits))
	for _, h := range b.habits {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}

// Create adds a habit for the signed-in user. On failure the user-facing
// message is stored in Err and false is returned.
func (b *Habits) Create(ctx context.Context, name string, frequency constants.Frequency) bool {
	b.clearError()
	userID := b.UserID()
	if userID == "" {
		b.storeError(notSignedIn)
		return false
	}

	habit := models.Habit{Name: name, Frequency: frequency}
	if err := validation.Habit(habit); err != nil {
		b.storeError(err.Error())
		return false
	}

	if _, err := b.gw.CreateHabit(ctx, userID, habit); err != nil {
		b.storeError(userMessage(err, "add habit"))
		return false
	}
	return true
}

// SetProgress updates a habit's progress percentage.
func (b *Habits) SetProgress(ctx context.Context, id string, progress int) bool {
	patch := models.HabitPatch{Progress: &progress}
	return b.Edit(ctx, id, patch)
}

// Edit merges the non-nil fields of the patch into the habit.
func (b *Habits) Edit(ctx context.Context, id string, patch models.HabitPatch) bool {
	b.clearError()
	if b.UserID() == "" {
		b.storeError(notSignedIn)
		return false
	}

	if err := validation.HabitPatch(patch); err != nil {
		b.storeError(err.Error())
		return false
	}

	if err := b.gw.UpdateHabit(ctx, id, patch); err != nil {
		b.storeError(userMessage(err, "update habit"))
		return false
	}
	return true
}

// Remove deletes a habit.
func (b *Habits) Remove(ctx context.Context, id string) bool {
	b.clearError()
	if b.UserID() == "" {
		b.storeError(notSignedIn)
		return false
	}

	if err := b.gw.DeleteHabit(ctx, id); err != nil {
		b.storeError(userMessage(err, "delete habit"))
		return false
	}
	return true
}

package binder

import (
	"context"

	"github.com/julianstephens/tempo/internal/auth"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/gateway"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/validation"
)

// Routines is the live view of the signed-in user's routines, optionally
// narrowed to one frequency. The filter is fixed for the binder's lifetime;
// a different filter means a different binder.
type Routines struct {
	core
	gw        gateway.Provider
	frequency constants.Frequency
	routines  []models.Routine
}

// NewRoutines creates a routines binder. An empty frequency binds all
// routines.
func NewRoutines(gw gateway.Provider, session *auth.Session, frequency constants.Frequency) *Routines {
	b := &Routines{gw: gw, frequency: frequency}
	b.init(session, b.subscribe, func() { b.routines = nil })
	return b
}

func (b *Routines) subscribe(userID string) (gateway.Unsubscribe, error) {
	return b.gw.SubscribeRoutines(userID, b.frequency, b.apply, b.subscriptionFailed)
}

func (b *Routines) apply(routines []models.Routine) {
	b.mu.Lock()
	b.routines = routines
	b.errMsg = ""
	b.markReadyLocked()
	b.mu.Unlock()
}

// All returns the latest snapshot, newest first.
func (b *Routines) All() []models.Routine {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Routine, len(b.routines))
	copy(out, b.routines)
	return out
}

// Create adds a routine for the signed-in user.
func (b *Routines) Create(ctx context.Context, name, timeStr string, frequency constants.Frequency) bool {
	b.clearError()
	userID := b.UserID()
	if userID == "" {
		b.storeError(notSignedIn)
		return false
	}

	routine := models.Routine{Name: name, Time: timeStr, Frequency: frequency}
	if err := validation.Routine(routine); err != nil {
		b.storeError(err.Error())
		return false
	}

	if _, err := b.gw.CreateRoutine(ctx, userID, routine); err != nil {
		b.storeError(userMessage(err, "add routine"))
		return false
	}
	return true
}

// Toggle flips a routine's completed state.
func (b *Routines) Toggle(ctx context.Context, id string) bool {
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

	next := !current.Completed
	if err := b.gw.UpdateRoutine(ctx, id, models.RoutinePatch{Completed: &next}); err != nil {
		b.storeError(userMessage(err, "update routine"))
		return false
	}
	return true
}

// Edit merges the non-nil fields of the patch into the routine.
func (b *Routines) Edit(ctx context.Context, id string, patch models.RoutinePatch) bool {
	b.clearError()
	if b.UserID() == "" {
		b.storeError(notSignedIn)
		return false
	}

	if err := validation.RoutinePatch(patch); err != nil {
		b.storeError(err.Error())
		return false
	}

	if err := b.gw.UpdateRoutine(ctx, id, patch); err != nil {
		b.storeError(userMessage(err, "update routine"))
		return false
	}
	return true
}

// Remove deletes a routine.
func (b *Routines) Remove(ctx context.Context, id string) bool {
	b.clearError()
	if b.UserID() == "" {
		b.storeError(notSignedIn)
		return false
	}

	if err := b.gw.DeleteRoutine(ctx, id); err != nil {
		b.storeError(userMessage(err, "delete routine"))
		return false
	}
	return true
}

func (b *Routines) find(id string) (models.Routine, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.routines {
		if r.ID == id {
			return r, true
		}
	}
	return models.Routine{}, false
}

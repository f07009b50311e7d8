package binder

import (
	"context"

	"github.com/julianstephens/tempo/internal/auth"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/gateway"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/validation"
)

// Tasks is the live view of the signed-in user's tasks, optionally narrowed
// to one frequency.
type Tasks struct {
	core
	gw        gateway.Provider
	frequency constants.Frequency
	tasks     []models.Task
}

// NewTasks creates a tasks binder. An empty frequency binds all tasks.
func NewTasks(gw gateway.Provider, session *auth.Session, frequency constants.Frequency) *Tasks {
	b := &Tasks{gw: gw, frequency: frequency}
	b.init(session, b.subscribe, func() { b.tasks = nil })
	return b
}

func (b *Tasks) subscribe(userID string) (gateway.Unsubscribe, error) {
	return b.gw.SubscribeTasks(userID, b.frequency, b.apply, b.subscriptionFailed)
}

func (b *Tasks) apply(tasks []models.Task) {
	b.mu.Lock()
	b.tasks = tasks
	b.errMsg = ""
	b.markReadyLocked()
	b.mu.Unlock()
}

// All returns the latest snapshot, newest first.
func (b *Tasks) All() []models.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Pending returns tasks not yet completed.
func (b *Tasks) Pending() []models.Task {
	return b.filter(func(t models.Task) bool { return !t.Completed })
}

// Completed returns finished tasks.
func (b *Tasks) Completed() []models.Task {
	return b.filter(func(t models.Task) bool { return t.Completed })
}

// ByCategory returns tasks in the given category.
func (b *Tasks) ByCategory(category string) []models.Task {
	return b.filter(func(t models.Task) bool { return t.Category == category })
}

// ByFrequency returns tasks with the given frequency.
func (b *Tasks) ByFrequency(frequency constants.Frequency) []models.Task {
	return b.filter(func(t models.Task) bool { return t.Frequency == frequency })
}

func (b *Tasks) filter(keep func(models.Task) bool) []models.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Task, 0, len(b.tasks))
	for _, t := range b.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Create adds a task for the signed-in user.
func (b *Tasks) Create(ctx context.Context, name, category string, frequency constants.Frequency) bool {
	b.clearError()
	userID := b.UserID()
	if userID == "" {
		b.storeError(notSignedIn)
		return false
	}

	task := models.Task{Name: name, Category: category, Frequency: frequency}
	if err := validation.Task(task); err != nil {
		b.storeError(err.Error())
		return false
	}

	if _, err := b.gw.CreateTask(ctx, userID, task); err != nil {
		b.storeError(userMessage(err, "add task"))
		return false
	}
	return true
}

// Toggle flips a task's completed state.
func (b *Tasks) Toggle(ctx context.Context, id string) bool {
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
	if err := b.gw.UpdateTask(ctx, id, models.TaskPatch{Completed: &next}); err != nil {
		b.storeError(userMessage(err, "update task"))
		return false
	}
	return true
}

// Edit merges the non-nil fields of the patch into the task.
func (b *Tasks) Edit(ctx context.Context, id string, patch models.TaskPatch) bool {
	b.clearError()
	if b.UserID() == "" {
		b.storeError(notSignedIn)
		return false
	}

	if err := validation.TaskPatch(patch); err != nil {
		b.storeError(err.Error())
		return false
	}

	if err := b.gw.UpdateTask(ctx, id, patch); err != nil {
		b.storeError(userMessage(err, "update task"))
		return false
	}
	return true
}

// Remove deletes a task.
func (b *Tasks) Remove(ctx context.Context, id string) bool {
	b.clearError()
	if b.UserID() == "" {
		b.storeError(notSignedIn)
		return false
	}

	if err := b.gw.DeleteTask(ctx, id); err != nil {
		b.storeError(userMessage(err, "delete task"))
		return false
	}
	return true
}

func (b *Tasks) find(id string) (models.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range b.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

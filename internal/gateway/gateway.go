// Package gateway mediates all access to the remote collection store. It
// exposes create/update/delete operations plus live subscriptions for the
// four user-owned collections, translating every backend failure into a
// small error taxonomy (PermissionDenied, NotFound, Unavailable, Unknown).
package gateway

import (
	"context"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
)

// Unsubscribe detaches a live query. After it returns, the subscription's
// onChange callback is never invoked again. Calling it more than once is
// safe.
type Unsubscribe func()

// Provider is the remote collection gateway contract. Create stamps the
// caller's user id and server-side timestamps and applies collection
// defaults; Update merges only the non-nil fields of the patch; Subscribe
// delivers the full current result set once immediately and again after
// every change, in a strictly sequential order per subscription. The
// optional onError callback receives live-query failures; it shares the
// subscription's sequential delivery and stops with Unsubscribe.
//
// Habit, routine, and task subscriptions are ordered by creation time
// descending; reminders are ordered by clock time ascending. Task and
// routine subscriptions accept an optional frequency equality filter (the
// empty frequency means no filter).
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	CreateHabit(ctx context.Context, userID string, habit models.Habit) (string, error)
	UpdateHabit(ctx context.Context, id string, patch models.HabitPatch) error
	DeleteHabit(ctx context.Context, id string) error
	SubscribeHabits(userID string, onChange func([]models.Habit), onError func(error)) (Unsubscribe, error)

	// Routines
	CreateRoutine(ctx context.Context, userID string, routine models.Routine) (string, error)
	UpdateRoutine(ctx context.Context, id string, patch models.RoutinePatch) error
	DeleteRoutine(ctx context.Context, id string) error
	SubscribeRoutines(userID string, frequency constants.Frequency, onChange func([]models.Routine), onError func(error)) (Unsubscribe, error)

	// Tasks
	CreateTask(ctx context.Context, userID string, task models.Task) (string, error)
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) error
	DeleteTask(ctx context.Context, id string) error
	SubscribeTasks(userID string, frequency constants.Frequency, onChange func([]models.Task), onError func(error)) (Unsubscribe, error)

	// Reminders
	CreateReminder(ctx context.Context, userID string, reminder models.Reminder) (string, error)
	UpdateReminder(ctx context.Context, id string, patch models.ReminderPatch) error
	DeleteReminder(ctx context.Context, id string) error
	SubscribeReminders(userID string, onChange func([]models.Reminder), onError func(error)) (Unsubscribe, error)
}

// collection identifies one of the four server-held collections for change
// fan-out.
type collection string

const (
	colHabits    collection = "habits"
	colRoutines  collection = "routines"
	colTasks     collection = "tasks"
	colReminders collection = "reminders"
)

package gateway

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/julianstephens/tempo/internal/models"
)

// backend implements the write half of Provider over any database/sql
// driver. bind adapts placeholder style, changed announces a committed write
// to the owning store's fan-out, and timestamp supplies the server-assigned
// created_at/updated_at values.
type backend struct {
	db        *sql.DB
	bind      func(string) string
	changed   func(collection)
	timestamp func() string
}

var errNotLoaded = &Error{Kind: KindUnavailable, Message: "Service temporarily unavailable. Please try again later."}

func (b *backend) ready() error {
	if b == nil || b.db == nil {
		return errNotLoaded
	}
	return nil
}

func (b *backend) CreateHabit(ctx context.Context, userID string, habit models.Habit) (string, error) {
	if err := b.ready(); err != nil {
		return "", err
	}

	id := uuid.New().String()
	now := b.timestamp()
	_, err := b.db.ExecContext(ctx, b.bind(`
		INSERT INTO habits (id, user_id, name, frequency, progress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		id, userID, habit.Name, string(habit.Frequency), 0, now, now,
	)
	if err != nil {
		return "", translate(err, "adding habit")
	}

	b.changed(colHabits)
	return id, nil
}

func (b *backend) UpdateHabit(ctx context.Context, id string, patch models.HabitPatch) error {
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Frequency != nil {
		set.add("frequency", string(*patch.Frequency))
	}
	if patch.Progress != nil {
		set.add("progress", *patch.Progress)
	}
	return b.update(ctx, colHabits, "updating habit", "habits", id, &set)
}

func (b *backend) DeleteHabit(ctx context.Context, id string) error {
	return b.delete(ctx, colHabits, "deleting habit", `DELETE FROM habits WHERE id = ?`, id)
}

func (b *backend) CreateRoutine(ctx context.Context, userID string, routine models.Routine) (string, error) {
	if err := b.ready(); err != nil {
		return "", err
	}

	id := uuid.New().String()
	now := b.timestamp()
	_, err := b.db.ExecContext(ctx, b.bind(`
		INSERT INTO routines (id, user_id, name, time, completed, frequency, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		id, userID, routine.Name, routine.Time, routine.Completed, string(routine.Frequency), now, now,
	)
	if err != nil {
		return "", translate(err, "adding routine")
	}

	b.changed(colRoutines)
	return id, nil
}

func (b *backend) UpdateRoutine(ctx context.Context, id string, patch models.RoutinePatch) error {
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Time != nil {
		set.add("time", *patch.Time)
	}
	if patch.Completed != nil {
		set.add("completed", *patch.Completed)
	}
	if patch.Frequency != nil {
		set.add("frequency", string(*patch.Frequency))
	}
	return b.update(ctx, colRoutines, "updating routine", "routines", id, &set)
}

func (b *backend) DeleteRoutine(ctx context.Context, id string) error {
	return b.delete(ctx, colRoutines, "deleting routine", `DELETE FROM routines WHERE id = ?`, id)
}

func (b *backend) CreateTask(ctx context.Context, userID string, task models.Task) (string, error) {
	if err := b.ready(); err != nil {
		return "", err
	}

	id := uuid.New().String()
	now := b.timestamp()
	_, err := b.db.ExecContext(ctx, b.bind(`
		INSERT INTO tasks (id, user_id, name, category, frequency, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		id, userID, task.Name, task.Category, string(task.Frequency), false, now, now,
	)
	if err != nil {
		return "", translate(err, "adding task")
	}

	b.changed(colTasks)
	return id, nil
}

func (b *backend) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) error {
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Category != nil {
		set.add("category", *patch.Category)
	}
	if patch.Frequency != nil {
		set.add("frequency", string(*patch.Frequency))
	}
	if patch.Completed != nil {
		set.add("completed", *patch.Completed)
	}
	return b.update(ctx, colTasks, "updating task", "tasks", id, &set)
}

func (b *backend) DeleteTask(ctx context.Context, id string) error {
	return b.delete(ctx, colTasks, "deleting task", `DELETE FROM tasks WHERE id = ?`, id)
}

func (b *backend) CreateReminder(ctx context.Context, userID string, reminder models.Reminder) (string, error) {
	if err := b.ready(); err != nil {
		return "", err
	}

	daysJSON, err := marshalDays(reminder.Days)
	if err != nil {
		return "", translate(err, "adding reminder")
	}

	id := uuid.New().String()
	now := b.timestamp()
	_, err = b.db.ExecContext(ctx, b.bind(`
		INSERT INTO reminders (id, user_id, name, time, days, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		id, userID, reminder.Name, reminder.Time, daysJSON, true, now, now,
	)
	if err != nil {
		return "", translate(err, "adding reminder")
	}

	b.changed(colReminders)
	return id, nil
}

func (b *backend) UpdateReminder(ctx context.Context, id string, patch models.ReminderPatch) error {
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Time != nil {
		set.add("time", *patch.Time)
	}
	if patch.Days != nil {
		daysJSON, err := marshalDays(*patch.Days)
		if err != nil {
			return translate(err, "updating reminder")
		}
		set.add("days", daysJSON)
	}
	if patch.Enabled != nil {
		set.add("enabled", *patch.Enabled)
	}
	return b.update(ctx, colReminders, "updating reminder", "reminders", id, &set)
}

func (b *backend) DeleteReminder(ctx context.Context, id string) error {
	return b.delete(ctx, colReminders, "deleting reminder", `DELETE FROM reminders WHERE id = ?`, id)
}

// update applies a patch's SET clause. An empty patch is a no-op success.
func (b *backend) update(ctx context.Context, c collection, op, table, id string, set *setClause) error {
	if err := b.ready(); err != nil {
		return err
	}
	if set.empty() {
		return nil
	}
	query, args := set.build(table, id, b.timestamp())
	return b.execOne(ctx, c, op, query, args...)
}

func (b *backend) delete(ctx context.Context, c collection, op, query, id string) error {
	if err := b.ready(); err != nil {
		return err
	}
	return b.execOne(ctx, c, op, query, id)
}

// execOne runs a write that must affect exactly one row, then announces the
// change.
func (b *backend) execOne(ctx context.Context, c collection, op, query string, args ...any) error {
	res, err := b.db.ExecContext(ctx, b.bind(query), args...)
	if err != nil {
		return translate(err, op)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return translate(err, op)
	}
	if affected == 0 {
		return notFound(op)
	}

	b.changed(c)
	return nil
}

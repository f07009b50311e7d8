package gateway

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "tempo.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// waitFor reads snapshots until one satisfies ok, failing after a deadline.
// Deliveries coalesce under rapid writes, so tests match on content rather
// than counting messages.
func waitFor[T any](t *testing.T, ch <-chan []T, ok func([]T) bool) []T {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case snapshot := <-ch:
			if ok(snapshot) {
				return snapshot
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
		}
	}
}

func TestHabitLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ch := make(chan []models.Habit, 16)
	unsub, err := store.SubscribeHabits("u1", func(habits []models.Habit) { ch <- habits }, nil)
	if err != nil {
		t.Fatalf("SubscribeHabits() failed: %v", err)
	}
	defer unsub()

	waitFor(t, ch, func(habits []models.Habit) bool { return len(habits) == 0 })

	id, err := store.CreateHabit(ctx, "u1", models.Habit{Name: "Read", Frequency: constants.FrequencyDaily})
	if err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}
	if id == "" {
		t.Fatal("CreateHabit() returned an empty id")
	}

	snapshot := waitFor(t, ch, func(habits []models.Habit) bool { return len(habits) == 1 })
	habit := snapshot[0]
	if habit.ID != id {
		t.Errorf("habit.ID = %q, want %q", habit.ID, id)
	}
	if habit.UserID != "u1" {
		t.Errorf("habit.UserID = %q, want u1", habit.UserID)
	}
	if habit.Progress != 0 {
		t.Errorf("new habit progress = %d, want 0", habit.Progress)
	}
	if habit.CreatedAt.IsZero() || habit.UpdatedAt.IsZero() {
		t.Error("timestamps were not stamped on create")
	}

	progress := 60
	if err := store.UpdateHabit(ctx, id, models.HabitPatch{Progress: &progress}); err != nil {
		t.Fatalf("UpdateHabit() failed: %v", err)
	}
	snapshot = waitFor(t, ch, func(habits []models.Habit) bool {
		return len(habits) == 1 && habits[0].Progress == 60
	})
	if snapshot[0].Name != "Read" {
		t.Errorf("patch overwrote name: got %q, want Read", snapshot[0].Name)
	}

	if err := store.DeleteHabit(ctx, id); err != nil {
		t.Fatalf("DeleteHabit() failed: %v", err)
	}
	waitFor(t, ch, func(habits []models.Habit) bool { return len(habits) == 0 })
}

func TestEmptyPatchIsNoOp(t *testing.T) {
	store := newTestStore(t)

	// An all-nil patch succeeds without touching the row, even for an
	// unknown id.
	if err := store.UpdateHabit(context.Background(), "missing", models.HabitPatch{}); err != nil {
		t.Errorf("empty patch returned %v, want nil", err)
	}
}

func TestMissingRowsReportNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	name := "Renamed"
	if err := store.UpdateHabit(ctx, "missing", models.HabitPatch{Name: &name}); KindOf(err) != KindNotFound {
		t.Errorf("UpdateHabit kind = %v, want %v", KindOf(err), KindNotFound)
	}
	if err := store.DeleteHabit(ctx, "missing"); KindOf(err) != KindNotFound {
		t.Errorf("DeleteHabit kind = %v, want %v", KindOf(err), KindNotFound)
	}
}

func TestSubscriptionsAreScopedToUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateHabit(ctx, "u1", models.Habit{Name: "Mine", Frequency: constants.FrequencyDaily}); err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}
	if _, err := store.CreateHabit(ctx, "u2", models.Habit{Name: "Theirs", Frequency: constants.FrequencyDaily}); err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}

	ch := make(chan []models.Habit, 16)
	unsub, err := store.SubscribeHabits("u1", func(habits []models.Habit) { ch <- habits }, nil)
	if err != nil {
		t.Fatalf("SubscribeHabits() failed: %v", err)
	}
	defer unsub()

	snapshot := waitFor(t, ch, func(habits []models.Habit) bool { return len(habits) == 1 })
	if snapshot[0].Name != "Mine" {
		t.Errorf("snapshot contains %q, want only u1's habit", snapshot[0].Name)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ch := make(chan []models.Habit, 16)
	unsub, err := store.SubscribeHabits("u1", func(habits []models.Habit) { ch <- habits }, nil)
	if err != nil {
		t.Fatalf("SubscribeHabits() failed: %v", err)
	}
	waitFor(t, ch, func(habits []models.Habit) bool { return len(habits) == 0 })

	unsub()
	// Drain anything delivered before the unsubscribe completed.
	for len(ch) > 0 {
		<-ch
	}

	if _, err := store.CreateHabit(ctx, "u1", models.Habit{Name: "Read", Frequency: constants.FrequencyDaily}); err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}

	select {
	case snapshot := <-ch:
		t.Errorf("received snapshot %v after unsubscribe", snapshot)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestTaskFrequencyFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateTask(ctx, "u1", models.Task{Name: "Dishes", Category: "home", Frequency: constants.FrequencyDaily}); err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}
	if _, err := store.CreateTask(ctx, "u1", models.Task{Name: "Budget", Category: "finance", Frequency: constants.FrequencyMonthly}); err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}

	ch := make(chan []models.Task, 16)
	unsub, err := store.SubscribeTasks("u1", constants.FrequencyMonthly, func(tasks []models.Task) { ch <- tasks }, nil)
	if err != nil {
		t.Fatalf("SubscribeTasks() failed: %v", err)
	}
	defer unsub()

	snapshot := waitFor(t, ch, func(tasks []models.Task) bool { return len(tasks) == 1 })
	if snapshot[0].Name != "Budget" {
		t.Errorf("filtered snapshot contains %q, want Budget", snapshot[0].Name)
	}

	// The empty frequency means no filter.
	all := make(chan []models.Task, 16)
	unsubAll, err := store.SubscribeTasks("u1", "", func(tasks []models.Task) { all <- tasks }, nil)
	if err != nil {
		t.Fatalf("SubscribeTasks() failed: %v", err)
	}
	defer unsubAll()
	waitFor(t, all, func(tasks []models.Task) bool { return len(tasks) == 2 })
}

func TestRemindersOrderAndDaysRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	days := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if _, err := store.CreateReminder(ctx, "u1", models.Reminder{Name: "Standup", Time: "09:15", Days: days}); err != nil {
		t.Fatalf("CreateReminder() failed: %v", err)
	}
	if _, err := store.CreateReminder(ctx, "u1", models.Reminder{Name: "Wake", Time: "07:00"}); err != nil {
		t.Fatalf("CreateReminder() failed: %v", err)
	}

	ch := make(chan []models.Reminder, 16)
	unsub, err := store.SubscribeReminders("u1", func(reminders []models.Reminder) { ch <- reminders }, nil)
	if err != nil {
		t.Fatalf("SubscribeReminders() failed: %v", err)
	}
	defer unsub()

	snapshot := waitFor(t, ch, func(reminders []models.Reminder) bool { return len(reminders) == 2 })
	if snapshot[0].Time != "07:00" || snapshot[1].Time != "09:15" {
		t.Errorf("reminders not ordered by time: got %q, %q", snapshot[0].Time, snapshot[1].Time)
	}
	if !snapshot[0].Enabled {
		t.Error("new reminders should start enabled")
	}

	got := snapshot[1].Days
	if len(got) != len(days) {
		t.Fatalf("Days = %v, want %v", got, days)
	}
	for i := range days {
		if got[i] != days[i] {
			t.Fatalf("Days = %v, want %v", got, days)
		}
	}
}

func TestRoutineCompletedRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreateRoutine(ctx, "u1", models.Routine{Name: "Stretch", Time: "06:30", Frequency: constants.FrequencyDaily})
	if err != nil {
		t.Fatalf("CreateRoutine() failed: %v", err)
	}

	done := true
	if err := store.UpdateRoutine(ctx, id, models.RoutinePatch{Completed: &done}); err != nil {
		t.Fatalf("UpdateRoutine() failed: %v", err)
	}

	ch := make(chan []models.Routine, 16)
	unsub, err := store.SubscribeRoutines("u1", "", func(routines []models.Routine) { ch <- routines }, nil)
	if err != nil {
		t.Fatalf("SubscribeRoutines() failed: %v", err)
	}
	defer unsub()

	snapshot := waitFor(t, ch, func(routines []models.Routine) bool { return len(routines) == 1 })
	if !snapshot[0].Completed {
		t.Error("completed flag did not round-trip")
	}
}

func TestOperationsBeforeLoad(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "tempo.db"))

	_, err := store.CreateHabit(context.Background(), "u1", models.Habit{Name: "Read", Frequency: constants.FrequencyDaily})
	if KindOf(err) != KindUnavailable {
		t.Errorf("CreateHabit before Load kind = %v, want %v", KindOf(err), KindUnavailable)
	}
	if _, err := store.SubscribeHabits("u1", func([]models.Habit) {}, nil); KindOf(err) != KindUnavailable {
		t.Errorf("SubscribeHabits before Load kind = %v, want %v", KindOf(err), KindUnavailable)
	}
}

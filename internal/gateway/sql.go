package gateway

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
)

// Shared SQL surface for the SQLite and Postgres backends. Queries are
// written with ? placeholders; the Postgres backend rewrites them to $n.

const (
	selectHabits    = `SELECT id, user_id, name, frequency, progress, created_at, updated_at FROM habits WHERE user_id = ? ORDER BY created_at DESC`
	selectRoutines  = `SELECT id, user_id, name, time, completed, frequency, created_at, updated_at FROM routines WHERE user_id = ?`
	selectTasks     = `SELECT id, user_id, name, category, frequency, completed, created_at, updated_at FROM tasks WHERE user_id = ?`
	selectReminders = `SELECT id, user_id, name, time, days, enabled, created_at, updated_at FROM reminders WHERE user_id = ? ORDER BY time ASC`

	orderByCreated = ` ORDER BY created_at DESC`
	filterFreq     = ` AND frequency = ?`
)

// rebind rewrites ? placeholders to $1..$n for lib/pq.
func rebind(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// withFrequency appends the optional frequency filter and returns the final
// query plus its arguments. The base query must end before its ORDER BY.
func withFrequency(base, order string, userID string, frequency constants.Frequency) (string, []any) {
	if frequency == "" {
		return base + order, []any{userID}
	}
	return base + filterFreq + order, []any{userID, string(frequency)}
}

func scanHabits(rows *sql.Rows) ([]models.Habit, error) {
	habits := []models.Habit{}
	for rows.Next() {
		var h models.Habit
		var freq, createdAt, updatedAt string
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &freq, &h.Progress, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		h.Frequency = constants.Frequency(freq)
		if err := parseTimestamps(&h.CreatedAt, &h.UpdatedAt, createdAt, updatedAt); err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func scanRoutines(rows *sql.Rows) ([]models.Routine, error) {
	routines := []models.Routine{}
	for rows.Next() {
		var r models.Routine
		var freq, createdAt, updatedAt string
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.Time, &r.Completed, &freq, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		r.Frequency = constants.Frequency(freq)
		if err := parseTimestamps(&r.CreatedAt, &r.UpdatedAt, createdAt, updatedAt); err != nil {
			return nil, err
		}
		routines = append(routines, r)
	}
	return routines, rows.Err()
}

func scanTasks(rows *sql.Rows) ([]models.Task, error) {
	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		var freq, createdAt, updatedAt string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Category, &freq, &t.Completed, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		t.Frequency = constants.Frequency(freq)
		if err := parseTimestamps(&t.CreatedAt, &t.UpdatedAt, createdAt, updatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanReminders(rows *sql.Rows) ([]models.Reminder, error) {
	reminders := []models.Reminder{}
	for rows.Next() {
		var r models.Reminder
		var daysJSON, createdAt, updatedAt string
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.Time, &daysJSON, &r.Enabled, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(daysJSON), &r.Days); err != nil {
			return nil, fmt.Errorf("failed to unmarshal days: %w", err)
		}
		if err := parseTimestamps(&r.CreatedAt, &r.UpdatedAt, createdAt, updatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func parseTimestamps(created, updated *time.Time, createdStr, updatedStr string) error {
	c, err := time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return fmt.Errorf("failed to parse created_at: %w", err)
	}
	u, err := time.Parse(time.RFC3339Nano, updatedStr)
	if err != nil {
		return fmt.Errorf("failed to parse updated_at: %w", err)
	}
	*created = c
	*updated = u
	return nil
}

func marshalDays(days []time.Weekday) (string, error) {
	if days == nil {
		days = []time.Weekday{}
	}
	data, err := json.Marshal(days)
	if err != nil {
		return "", fmt.Errorf("failed to marshal days: %w", err)
	}
	return string(data), nil
}

// setClause builds the SET fragment of an UPDATE from patch columns.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, val any) {
	s.cols = append(s.cols, col+" = ?")
	s.args = append(s.args, val)
}

func (s *setClause) empty() bool {
	return len(s.cols) == 0
}

func (s *setClause) build(table string, id string, now string) (string, []any) {
	s.add("updated_at", now)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(s.cols, ", "))
	return query, append(s.args, id)
}

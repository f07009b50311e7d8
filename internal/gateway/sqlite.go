package gateway

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/migration"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/migrations"
)

// timestampLayout is a fixed-width RFC3339 form so stored timestamps sort
// chronologically as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func utcTimestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}

// SQLiteStore is the single-process gateway backend. Change fan-out happens
// through an in-process hub: every committed write wakes the subscribers of
// its collection, which re-query and deliver a fresh snapshot.
type SQLiteStore struct {
	*backend
	path string
	hub  *hub
}

func NewSQLiteStore(path string) *SQLiteStore {
	s := &SQLiteStore{
		path: path,
		hub:  newHub(),
	}
	s.backend = &backend{
		bind:      func(q string) string { return q },
		changed:   s.hub.broadcast,
		timestamp: utcTimestamp,
	}
	return s
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.backend.db = db

	return s.runMigrations()
}

func (s *SQLiteStore) Load() error {
	if s.backend.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.backend.db = db

	return s.validateSchemaVersion()
}

func (s *SQLiteStore) Close() error {
	if s.backend.db != nil {
		return s.backend.db.Close()
	}
	return nil
}

func (s *SQLiteStore) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	_, err = migration.NewRunner(s.backend.db, subFS).Apply(nil)
	return err
}

func (s *SQLiteStore) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.backend.db, subFS).ValidateVersion()
}

func (s *SQLiteStore) SubscribeHabits(userID string, onChange func([]models.Habit), onError func(error)) (Unsubscribe, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.subscribe(colHabits, onError, func() (func(), error) {
		rows, err := s.backend.db.Query(selectHabits, userID)
		if err != nil {
			return nil, translate(err, "listening to habits")
		}
		defer rows.Close()
		habits, err := scanHabits(rows)
		if err != nil {
			return nil, translate(err, "listening to habits")
		}
		return func() { onChange(habits) }, nil
	}), nil
}

func (s *SQLiteStore) SubscribeRoutines(userID string, frequency constants.Frequency, onChange func([]models.Routine), onError func(error)) (Unsubscribe, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	query, args := withFrequency(selectRoutines, orderByCreated, userID, frequency)
	return s.subscribe(colRoutines, onError, func() (func(), error) {
		rows, err := s.backend.db.Query(query, args...)
		if err != nil {
			return nil, translate(err, "listening to routines")
		}
		defer rows.Close()
		routines, err := scanRoutines(rows)
		if err != nil {
			return nil, translate(err, "listening to routines")
		}
		return func() { onChange(routines) }, nil
	}), nil
}

func (s *SQLiteStore) SubscribeTasks(userID string, frequency constants.Frequency, onChange func([]models.Task), onError func(error)) (Unsubscribe, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	query, args := withFrequency(selectTasks, orderByCreated, userID, frequency)
	return s.subscribe(colTasks, onError, func() (func(), error) {
		rows, err := s.backend.db.Query(query, args...)
		if err != nil {
			return nil, translate(err, "listening to tasks")
		}
		defer rows.Close()
		tasks, err := scanTasks(rows)
		if err != nil {
			return nil, translate(err, "listening to tasks")
		}
		return func() { onChange(tasks) }, nil
	}), nil
}

func (s *SQLiteStore) SubscribeReminders(userID string, onChange func([]models.Reminder), onError func(error)) (Unsubscribe, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.subscribe(colReminders, onError, func() (func(), error) {
		rows, err := s.backend.db.Query(selectReminders, userID)
		if err != nil {
			return nil, translate(err, "listening to reminders")
		}
		defer rows.Close()
		reminders, err := scanReminders(rows)
		if err != nil {
			return nil, translate(err, "listening to reminders")
		}
		return func() { onChange(reminders) }, nil
	}), nil
}

func (s *SQLiteStore) subscribe(c collection, onError func(error), query func() (func(), error)) Unsubscribe {
	sub := newSubscriber()
	s.hub.add(c, sub)
	go sub.run(query, onError)
	return func() {
		sub.close()
		s.hub.remove(c, sub)
	}
}

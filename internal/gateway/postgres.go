package gateway

import (
	"database/sql"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/logger"
	"github.com/julianstephens/tempo/internal/migration"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/migrations"
)

const (
	listenerMinReconnect = 2 * time.Second
	listenerMaxReconnect = time.Minute
)

// PostgresStore is the shared-server gateway backend. Live queries ride on
// LISTEN/NOTIFY: every committed write issues pg_notify on the collection's
// channel, and each subscription holds a pq.Listener that re-queries when a
// notification arrives. That makes change fan-out work across processes,
// not just within one.
type PostgresStore struct {
	*backend
	connStr string
}

func NewPostgresStore(connStr string) *PostgresStore {
	s := &PostgresStore{connStr: connStr}
	s.backend = &backend{
		bind:      rebind,
		changed:   s.notify,
		timestamp: utcTimestamp,
	}
	return s
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password inline. Those are rejected; credentials belong in the OS keyring,
// environment, or .pgpass.
func HasEmbeddedCredentials(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.User != nil {
		if _, set := u.User.Password(); set {
			return true
		}
	}
	for _, part := range strings.Fields(connStr) {
		if strings.HasPrefix(strings.ToLower(part), "password=") {
			return true
		}
	}
	return false
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	return s.runMigrations()
}

func (s *PostgresStore) Load() error {
	if s.backend.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}

	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.backend.db, subFS).ValidateVersion()
}

func (s *PostgresStore) Close() error {
	if s.backend.db != nil {
		return s.backend.db.Close()
	}
	return nil
}

func (s *PostgresStore) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return translate(err, "connecting to database")
	}
	s.backend.db = db
	return nil
}

func (s *PostgresStore) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	_, err = migration.NewRunner(s.backend.db, subFS).Apply(nil)
	return err
}

func channelFor(c collection) string {
	return constants.AppName + "_" + string(c)
}

func (s *PostgresStore) notify(c collection) {
	if _, err := s.backend.db.Exec("SELECT pg_notify($1, '')", channelFor(c)); err != nil {
		logger.Warn("Change notification failed", "collection", string(c), "error", err)
	}
}

func (s *PostgresStore) SubscribeHabits(userID string, onChange func([]models.Habit), onError func(error)) (Unsubscribe, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.subscribe(colHabits, onError, func() (func(), error) {
		rows, err := s.backend.db.Query(rebind(selectHabits), userID)
		if err != nil {
			return nil, translate(err, "listening to habits")
		}
		defer rows.Close()
		habits, err := scanHabits(rows)
		if err != nil {
			return nil, translate(err, "listening to habits")
		}
		return func() { onChange(habits) }, nil
	})
}

func (s *PostgresStore) SubscribeRoutines(userID string, frequency constants.Frequency, onChange func([]models.Routine), onError func(error)) (Unsubscribe, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	query, args := withFrequency(selectRoutines, orderByCreated, userID, frequency)
	query = rebind(query)
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
	})
}

func (s *PostgresStore) SubscribeTasks(userID string, frequency constants.Frequency, onChange func([]models.Task), onError func(error)) (Unsubscribe, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	query, args := withFrequency(selectTasks, orderByCreated, userID, frequency)
	query = rebind(query)
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
	})
}

func (s *PostgresStore) SubscribeReminders(userID string, onChange func([]models.Reminder), onError func(error)) (Unsubscribe, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.subscribe(colReminders, onError, func() (func(), error) {
		rows, err := s.backend.db.Query(rebind(selectReminders), userID)
		if err != nil {
			return nil, translate(err, "listening to reminders")
		}
		defer rows.Close()
		reminders, err := scanReminders(rows)
		if err != nil {
			return nil, translate(err, "listening to reminders")
		}
		return func() { onChange(reminders) }, nil
	})
}

func (s *PostgresStore) subscribe(c collection, onError func(error), query func() (func(), error)) (Unsubscribe, error) {
	listener := pq.NewListener(s.connStr, listenerMinReconnect, listenerMaxReconnect, nil)
	if err := listener.Listen(channelFor(c)); err != nil {
		listener.Close()
		return nil, translate(err, "opening live query")
	}

	sub := newSubscriber()

	// Pump listener notifications into the delivery loop. The pump exits
	// when the listener closes its Notify channel.
	go func() {
		for range listener.Notify {
			sub.signal()
		}
	}()
	go sub.run(query, onError)

	return func() {
		sub.close()
		if err := listener.Close(); err != nil {
			logger.Warn("Failed to close listener", "collection", string(c), "error", err)
		}
	}, nil
}

// Package notify schedules in-process notification timers and delivers the
// fired notifications to the desktop through the tray companion app.
package notify

import (
	"strconv"
	"sync"
	"time"

	"github.com/julianstephens/tempo/internal/logger"
)

// Displayer shows a notification to the user. The tray webhook Notifier is
// the production implementation.
type Displayer interface {
	Display(title, body string) error
}

// Scheduler keeps one pending timer per (title, fire time) pair. Scheduling
// the same pair again replaces the earlier timer, so re-deriving the same
// reminder set is harmless.
type Scheduler struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	display Displayer
	now     func() time.Time
}

func NewScheduler(display Displayer) *Scheduler {
	return &Scheduler{
		timers:  make(map[string]*time.Timer),
		display: display,
		now:     time.Now,
	}
}

func scheduleKey(title string, fireAt time.Time) string {
	return title + "-" + strconv.FormatInt(fireAt.UnixMilli(), 10)
}

// Schedule arms a timer that displays the notification at fireAt. Times in
// the past are ignored. A timer already pending for the same title and fire
// time is replaced.
func (s *Scheduler) Schedule(title, body string, fireAt time.Time) {
	delay := fireAt.Sub(s.now())
	if delay <= 0 {
		return
	}

	key := scheduleKey(title, fireAt)

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.timers[key]; ok {
		prev.Stop()
	}
	s.timers[key] = time.AfterFunc(delay, func() {
		s.fire(key, title, body)
	})
}

func (s *Scheduler) fire(key, title, body string) {
	s.mu.Lock()
	_, pending := s.timers[key]
	delete(s.timers, key)
	s.mu.Unlock()

	// CancelAll may have raced the callback already being in flight.
	if !pending {
		return
	}

	if err := s.display.Display(title, body); err != nil {
		logger.Warn("failed to display notification", "title", title, "error", err)
	}
}

// CancelAll stops every pending timer. Safe to call repeatedly.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, timer := range s.timers {
		timer.Stop()
		delete(s.timers, key)
	}
}

// Pending reports how many timers are currently armed.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

package gateway

import (
	"sync"

	"github.com/julianstephens/tempo/internal/logger"
)

// subscriber runs one live query. All snapshot and error callbacks for the
// subscription are made from its single goroutine, so deliveries are
// strictly sequential and never overlap. The closed flag is checked under
// mu immediately before each callback, which is what lets Unsubscribe
// guarantee no further calls once it has returned.
type subscriber struct {
	wake chan struct{} // buffered; coalesces change signals
	stop chan struct{}

	mu     sync.Mutex
	closed bool
	once   sync.Once
}

func newSubscriber() *subscriber {
	s := &subscriber{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
	}
	// Arm the initial snapshot delivery.
	s.signal()
	return s
}

// signal wakes the delivery loop. Multiple signals before a delivery
// coalesce into one re-query.
func (s *subscriber) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// run re-queries and delivers until the subscription is detached. query
// returns the callback to invoke (built against the fresh snapshot), or an
// error to hand to onError.
func (s *subscriber) run(query func() (func(), error), onError func(error)) {
	for {
		select {
		case <-s.stop:
			return
		case <-s.wake:
			emit, err := query()
			if err != nil {
				logger.Warn("Live query refresh failed", "error", err)
				if onError != nil {
					s.deliver(func() { onError(err) })
				}
				continue
			}
			s.deliver(emit)
		}
	}
}

// deliver invokes fn unless the subscription has been detached.
func (s *subscriber) deliver(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	fn()
}

// close detaches the subscription. Safe to call more than once. After the
// first call returns, no callback will be invoked again.
func (s *subscriber) close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.stop)
	})
}

// hub fans committed writes out to the subscribers of a collection.
type hub struct {
	mu   sync.Mutex
	subs map[collection]map[*subscriber]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[collection]map[*subscriber]struct{})}
}

func (h *hub) add(c collection, s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[c] == nil {
		h.subs[c] = make(map[*subscriber]struct{})
	}
	h.subs[c][s] = struct{}{}
}

func (h *hub) remove(c collection, s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[c], s)
}

func (h *hub) broadcast(c collection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs[c] {
		s.signal()
	}
}

// Package binder keeps live, per-user views of the stored collections. Each
// binder owns at most one gateway subscription at a time, follows the auth
// session's sign-in state, and exposes mutation helpers that report failures
// as stored user-facing messages rather than returned errors. The
// subscription stream stays the single source of truth for the snapshot.
package binder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/julianstephens/tempo/internal/auth"
	"github.com/julianstephens/tempo/internal/gateway"
)

// core carries the lifecycle shared by every collection binder: the single
// active subscription, the stored error message, and first-snapshot
// readiness.
type core struct {
	// bindMu serializes subscription transitions so teardown of the old
	// subscription always completes before a new one opens. It is never
	// held while a snapshot callback runs.
	bindMu sync.Mutex
	stop   gateway.Unsubscribe

	mu          sync.Mutex
	userID      string
	errMsg      string
	ready       chan struct{}
	readyClosed bool

	removeAuth func()
	open       func(userID string) (gateway.Unsubscribe, error)
	reset      func() // clears the typed snapshot; called with mu held
}

// init wires the binder to the session. If a user is already signed in the
// first subscription opens before init returns.
func (c *core) init(session *auth.Session, open func(string) (gateway.Unsubscribe, error), reset func()) {
	c.open = open
	c.reset = reset
	c.ready = make(chan struct{})
	c.removeAuth = session.OnChange(func(u *auth.User) {
		if u == nil {
			c.rebind("")
		} else {
			c.rebind(u.ID)
		}
	})
	// Signed out at construction: there is no snapshot to wait for.
	if c.UserID() == "" {
		c.markReady()
	}
}

// rebind tears down the current subscription and opens a new one for userID
// (none when empty). The snapshot is cleared only when the user actually
// changes; a same-user retry keeps the stale snapshot until a new
// subscription delivers, so a failed re-subscribe never blanks the view.
func (c *core) rebind(userID string) {
	c.bindMu.Lock()
	defer c.bindMu.Unlock()

	// Read-and-clear the slot, then stop outside c.mu: the subscriber may
	// be mid-delivery into a callback that needs c.mu.
	stop := c.stop
	c.stop = nil
	if stop != nil {
		stop()
	}

	c.mu.Lock()
	if userID != c.userID {
		c.reset()
	}
	c.userID = userID
	c.errMsg = ""
	if !c.readyClosed {
		close(c.ready)
	}
	c.ready = make(chan struct{})
	c.readyClosed = false
	c.mu.Unlock()

	if userID == "" {
		c.markReady()
		return
	}

	next, err := c.open(userID)
	if err != nil {
		c.subscriptionFailed(err)
		return
	}
	c.stop = next
}

// Retry re-opens the subscription for the current user after a failure.
func (c *core) Retry() {
	c.rebind(c.UserID())
}

// Close detaches the binder from the session and tears down any active
// subscription.
func (c *core) Close() {
	if c.removeAuth != nil {
		c.removeAuth()
	}
	c.rebind("")
}

// WaitReady blocks until the binder has delivered its first snapshot (or
// recorded a subscription failure) for the current sign-in state.
func (c *core) WaitReady(ctx context.Context) error {
	c.mu.Lock()
	ready := c.ready
	c.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ready:
		return nil
	}
}

// Err returns the stored user-facing error message, or "" when the last
// operation succeeded.
func (c *core) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// UserID returns the id the binder is currently bound to, or "".
func (c *core) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

func (c *core) markReady() {
	c.mu.Lock()
	c.markReadyLocked()
	c.mu.Unlock()
}

func (c *core) markReadyLocked() {
	if !c.readyClosed {
		c.readyClosed = true
		close(c.ready)
	}
}

func (c *core) storeError(msg string) {
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}

func (c *core) clearError() {
	c.mu.Lock()
	c.errMsg = ""
	c.mu.Unlock()
}

// subscriptionFailed records a stream error. The previous snapshot is kept.
func (c *core) subscriptionFailed(err error) {
	c.mu.Lock()
	c.errMsg = userMessage(err, "load updates")
	c.markReadyLocked()
	c.mu.Unlock()
}

const notSignedIn = "Not signed in. Please log in first."

// userMessage extracts the user-facing text from a gateway error, falling
// back to a generic message for the named operation.
func userMessage(err error, op string) string {
	var ge *gateway.Error
	if errors.As(err, &ge) {
		return ge.Message
	}
	return fmt.Sprintf("Failed to %s. Please try again.", op)
}

// Package cli defines the kong command tree. Commands drive the gateway
// through collection binders so the CLI sees exactly what a long-lived
// client would.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tempo/internal/auth"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/gateway"
)

// bindTimeout caps how long a one-shot command waits for its first
// snapshot.
const bindTimeout = 10 * time.Second

type Context struct {
	Gateway   gateway.Provider
	Session   *auth.Session
	ConfigDir string
}

// RequireUser fails with a login hint when no user is signed in.
func (c *Context) RequireUser() error {
	if c.Session.Current() == nil {
		return errors.New("not signed in, run 'tempo login' first")
	}
	return nil
}

// bindContext returns the context used for a command's binder lifetime.
func bindContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), bindTimeout)
}

type waiter interface {
	WaitReady(context.Context) error
	Err() string
}

// awaitSnapshot blocks until the binder delivered its first snapshot and
// surfaces any stored subscription error.
func awaitSnapshot(ctx context.Context, b waiter) error {
	if err := b.WaitReady(ctx); err != nil {
		return fmt.Errorf("timed out waiting for data: %w", err)
	}
	if msg := b.Err(); msg != "" {
		return errors.New(msg)
	}
	return nil
}

// parseFrequency validates an optional frequency flag value.
func parseFrequency(s string) (constants.Frequency, error) {
	if s == "" {
		return "", nil
	}
	f := constants.Frequency(s)
	if !constants.ValidFrequency(f) {
		return "", fmt.Errorf("invalid frequency %q (expected daily, weekly, or monthly)", s)
	}
	return f, nil
}

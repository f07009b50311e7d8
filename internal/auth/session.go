// Package auth tracks the signed-in user and notifies observers when the
// identity changes. The identity itself is persisted in the OS keyring so it
// survives restarts.
package auth

import "sync"

// User identifies a signed-in account. All stored entities are scoped to a
// user id.
type User struct {
	ID    string
	Email string
}

// Session holds the current authentication state. The zero value is a
// signed-out session; use Restore to pick up a persisted identity.
type Session struct {
	mu        sync.Mutex
	user      *User
	listeners map[int]func(*User)
	nextID    int
}

func NewSession() *Session {
	return &Session{listeners: make(map[int]func(*User))}
}

// Current returns the signed-in user, or nil when signed out.
func (s *Session) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Restore loads a persisted identity from the keyring into the session.
// A missing identity is not an error; the session just stays signed out.
func (s *Session) Restore() error {
	user, err := LoadIdentity()
	if err != nil {
		if err == ErrNotFound {
			return nil
		}
		return err
	}
	s.set(&user)
	return nil
}

// SignIn marks the user as signed in, persists the identity, and notifies
// observers.
func (s *Session) SignIn(user User) error {
	if err := SaveIdentity(user); err != nil {
		return err
	}
	s.set(&user)
	return nil
}

// SignOut clears the session and the persisted identity, then notifies
// observers with a nil user.
func (s *Session) SignOut() error {
	if err := ClearIdentity(); err != nil && err != ErrNotFound {
		return err
	}
	s.set(nil)
	return nil
}

// OnChange registers an observer called with the new user (nil on sign-out)
// whenever the identity changes. If a user is already signed in, fn is
// invoked immediately with it. The returned function removes the observer.
func (s *Session) OnChange(fn func(*User)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.user
	s.mu.Unlock()

	if current != nil {
		u := *current
		fn(&u)
	}

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Session) set(user *User) {
	s.mu.Lock()
	s.user = user
	fns := make([]func(*User), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	// Observers run outside the lock so they can call back into the session.
	for _, fn := range fns {
		if user != nil {
			u := *user
			fn(&u)
		} else {
			fn(nil)
		}
	}
}

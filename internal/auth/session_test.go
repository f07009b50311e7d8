package auth

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSignInSignOutLifecycle(t *testing.T) {
	gokeyring.MockInit()
	s := NewSession()

	if s.Current() != nil {
		t.Fatal("new session should be signed out")
	}

	var events []*User
	remove := s.OnChange(func(u *User) {
		events = append(events, u)
	})
	defer remove()

	user := User{ID: "u1", Email: "a@example.com"}
	if err := s.SignIn(user); err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}

	current := s.Current()
	if current == nil || current.ID != "u1" {
		t.Fatalf("Current() = %+v, want user u1", current)
	}

	if err := s.SignOut(); err != nil {
		t.Fatalf("SignOut() failed: %v", err)
	}
	if s.Current() != nil {
		t.Error("Current() should be nil after sign-out")
	}

	if len(events) != 2 {
		t.Fatalf("observer called %d times, want 2", len(events))
	}
	if events[0] == nil || events[0].ID != "u1" {
		t.Errorf("first event = %+v, want user u1", events[0])
	}
	if events[1] != nil {
		t.Errorf("second event = %+v, want nil", events[1])
	}
}

func TestOnChangeFiresImmediatelyWhenSignedIn(t *testing.T) {
	gokeyring.MockInit()
	s := NewSession()

	if err := s.SignIn(User{ID: "u2", Email: "b@example.com"}); err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}

	var got *User
	remove := s.OnChange(func(u *User) { got = u })
	defer remove()

	if got == nil || got.ID != "u2" {
		t.Errorf("observer not invoked with current user, got %+v", got)
	}
}

func TestRemovedObserverStopsReceiving(t *testing.T) {
	gokeyring.MockInit()
	s := NewSession()

	calls := 0
	remove := s.OnChange(func(*User) { calls++ })
	remove()

	if err := s.SignIn(User{ID: "u3"}); err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}
	if calls != 0 {
		t.Errorf("removed observer called %d times, want 0", calls)
	}
}

func TestRestorePicksUpSavedIdentity(t *testing.T) {
	gokeyring.MockInit()

	first := NewSession()
	if err := first.SignIn(User{ID: "u4", Email: "c@example.com"}); err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}

	second := NewSession()
	if err := second.Restore(); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	current := second.Current()
	if current == nil || current.ID != "u4" || current.Email != "c@example.com" {
		t.Errorf("Current() after restore = %+v, want u4", current)
	}
}

func TestRestoreWithNoIdentityStaysSignedOut(t *testing.T) {
	gokeyring.MockInit()
	_ = ClearIdentity()

	s := NewSession()
	if err := s.Restore(); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if s.Current() != nil {
		t.Error("Current() should be nil when no identity is saved")
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	gokeyring.MockInit()

	want := User{ID: "abc-123", Email: "d@example.com"}
	if err := SaveIdentity(want); err != nil {
		t.Fatalf("SaveIdentity() failed: %v", err)
	}

	got, err := LoadIdentity()
	if err != nil {
		t.Fatalf("LoadIdentity() failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadIdentity() = %+v, want %+v", got, want)
	}

	if err := ClearIdentity(); err != nil {
		t.Fatalf("ClearIdentity() failed: %v", err)
	}
	if _, err := LoadIdentity(); err != ErrNotFound {
		t.Errorf("LoadIdentity() after clear error = %v, want %v", err, ErrNotFound)
	}
}

func TestSaveIdentityRequiresID(t *testing.T) {
	gokeyring.MockInit()

	if err := SaveIdentity(User{Email: "no-id@example.com"}); err == nil {
		t.Error("SaveIdentity without id should fail")
	}
}

func TestConnectionStringRoundTrip(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://tempo@localhost:5432/tempo?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); err != ErrNotFound {
		t.Errorf("GetConnectionString() after delete error = %v, want %v", err, ErrNotFound)
	}
}

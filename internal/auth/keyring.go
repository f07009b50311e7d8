package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetConnectionString retrieves the database connection string from the OS keyring.
// Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		// Wrap other keyring errors as unavailable
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr)
	if err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// SaveIdentity persists the signed-in user's identity in the OS keyring so
// the session survives process restarts.
func SaveIdentity(user User) error {
	if user.ID == "" {
		return errors.New("user id cannot be empty")
	}
	record := user.ID + "|" + user.Email
	if err := keyring.Set(constants.AppName, constants.IdentityKeyringKey, record); err != nil {
		return fmt.Errorf("failed to store identity in keyring: %w", err)
	}
	return nil
}

// LoadIdentity retrieves the persisted user identity, if any.
func LoadIdentity() (User, error) {
	record, err := keyring.Get(constants.AppName, constants.IdentityKeyringKey)
	if err != nil {
		if err == keyring.ErrNotFound {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}

	id, email, _ := strings.Cut(record, "|")
	if id == "" {
		return User{}, ErrNotFound
	}
	return User{ID: id, Email: email}, nil
}

// ClearIdentity removes the persisted user identity from the OS keyring.
func ClearIdentity() error {
	err := keyring.Delete(constants.AppName, constants.IdentityKeyringKey)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete identity from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring is reachable but empty
	return err == nil || err == keyring.ErrNotFound
}

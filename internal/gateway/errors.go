package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
)

// Kind classifies a gateway failure. Backends translate every driver error
// into one of these kinds; raw driver errors never reach callers.
type Kind string

const (
	KindPermissionDenied Kind = "permission-denied"
	KindNotFound         Kind = "not-found"
	KindUnavailable      Kind = "unavailable"
	KindUnknown          Kind = "unknown"
)

// Error is the only error type the gateway surfaces. Message is safe to show
// to the user as-is.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf returns the classification of a gateway error, or KindUnknown for
// anything else.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

// translate maps a backend error into the gateway taxonomy. The op string
// names the failed operation in user-facing terms ("adding habit").
func translate(err error, op string) error {
	if err == nil {
		return nil
	}

	switch classify(err) {
	case KindPermissionDenied:
		return &Error{Kind: KindPermissionDenied, Message: "Permission denied. Please check your account permissions.", cause: err}
	case KindNotFound:
		return &Error{Kind: KindNotFound, Message: "Resource not found.", cause: err}
	case KindUnavailable:
		return &Error{Kind: KindUnavailable, Message: "Service temporarily unavailable. Please try again later.", cause: err}
	default:
		return &Error{Kind: KindUnknown, Message: fmt.Sprintf("Failed to %s. Please try again.", op), cause: err}
	}
}

func notFound(op string) error {
	return translate(sql.ErrNoRows, op)
}

func classify(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}

	if errors.Is(err, sql.ErrNoRows) {
		return KindNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, sql.ErrConnDone) {
		return KindUnavailable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindUnavailable
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "28": // invalid authorization specification
			return KindPermissionDenied
		case "42": // syntax error or access rule violation
			if pqErr.Code == "42501" {
				return KindPermissionDenied
			}
		case "08", "53", "57": // connection, resource, operator intervention
			return KindUnavailable
		}
	}

	return KindUnknown
}

// Package errs defines the error taxonomy shared by every layer.
// This package has no internal dependencies so it can be imported anywhere.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Wrap them with %w; classify with errors.Is or Kind.
var (
	// ErrNotFound means a premise or resource id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation means a request broke a policy or precondition.
	ErrValidation = errors.New("validation failed")
	// ErrConflict means the stored state changed since the caller's snapshot.
	ErrConflict = errors.New("conflict")
	// ErrTransient means the store failed in a way that may succeed on retry.
	ErrTransient = errors.New("transient store error")
)

// NotFound returns an ErrNotFound wrapping a formatted message.
func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

// Validation returns an ErrValidation wrapping a formatted message.
func Validation(format string, args ...any) error {
	return wrap(ErrValidation, format, args...)
}

// Conflict returns an ErrConflict wrapping a formatted message.
func Conflict(format string, args ...any) error {
	return wrap(ErrConflict, format, args...)
}

// Transient wraps cause as an ErrTransient, keeping the cause inspectable.
func Transient(cause error, format string, args ...any) error {
	return &transientError{msg: fmt.Sprintf(format, args...), cause: cause}
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}

type transientError struct {
	msg   string
	cause error
}

func (e *transientError) Error() string {
	if e.cause == nil {
		return e.msg + ": " + ErrTransient.Error()
	}
	return fmt.Sprintf("%s: %s: %v", e.msg, ErrTransient, e.cause)
}

func (e *transientError) Is(target error) bool { return target == ErrTransient }

func (e *transientError) Unwrap() error { return e.cause }

// Kind returns the sentinel that classifies err, or nil when err carries none.
func Kind(err error) error {
	for _, kind := range []error{ErrNotFound, ErrValidation, ErrConflict, ErrTransient} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Package apperr defines the application error taxonomy. Every error carries
// its kind plus the offending key so callers can decide how to react without
// string matching.
package apperr

import (
	"errors"
	"fmt"
)

// Error kinds, matched with errors.Is.
var (
	// ErrValidation marks malformed input rejected before any storage access.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a missing user or record where presence is mandatory.
	ErrNotFound = errors.New("not found")
	// ErrStorage marks a persistence layer failure or unexpected result shape.
	ErrStorage = errors.New("storage error")
)

// Error is an application error with its kind and the key it concerns.
type Error struct {
	Kind    error  // one of ErrValidation, ErrNotFound, ErrStorage
	Op      string // operation that failed, e.g. "recordResults"
	Key     string // offending key (user initials, word, date)
	Message string
	Err     error // underlying error, optional
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Message)
	if e.Key != "" {
		msg = fmt.Sprintf("%s (key=%q)", msg, e.Key)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the kind (and the wrapped cause) to errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Is reports whether the error matches its kind or its cause.
func (e *Error) Is(target error) bool {
	if errors.Is(e.Kind, target) {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

// Validation builds a validation error for the given key.
func Validation(op, key, message string) *Error {
	return &Error{Kind: ErrValidation, Op: op, Key: key, Message: message}
}

// NotFound builds a not-found error for the given key.
func NotFound(op, key, message string) *Error {
	return &Error{Kind: ErrNotFound, Op: op, Key: key, Message: message}
}

// Storage wraps a persistence failure for the given key.
func Storage(op, key string, err error) *Error {
	return &Error{Kind: ErrStorage, Op: op, Key: key, Message: "storage failure", Err: err}
}

// internal/app/system/apperr/apperr.go

// Package apperr defines the error taxonomy shared by stores and features.
//
// Stores translate driver-level failures into these values so handlers can
// map them onto HTTP responses without inspecting mongo errors themselves:
//
//   - ValidationError  -> 400 (user-correctable input)
//   - ErrNotFound      -> 404
//   - ErrNoMatch       -> 200 with an empty page (valid outcome, not a failure)
//   - ErrConflict      -> 409 (unique-constraint collision)
//   - ErrStoreTimeout  -> 503, retryable
//   - ErrStoreUnavailable -> 503
package apperr

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoMatch means a valid query matched zero records. It is not a
	// failure and must never surface as an HTTP error.
	ErrNoMatch = errors.New("no matches")

	// ErrConflict means a unique constraint was violated.
	ErrConflict = errors.New("conflict")

	// ErrStoreTimeout means a store call exceeded its deadline. Idempotent
	// reads may be retried once; mutating paths must not be retried without
	// an idempotency guard.
	ErrStoreTimeout = errors.New("store timeout")

	// ErrStoreUnavailable means the store could not be reached at all.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports malformed or out-of-range input with a
// human-readable reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// FromStore translates a mongo-driver error into the taxonomy. Lookup misses
// become ErrNotFound; deadline expiry becomes ErrStoreTimeout; everything
// else is left as-is for the caller to wrap or log.
func FromStore(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return ErrStoreTimeout
	case mongo.IsTimeout(err):
		return ErrStoreTimeout
	case errors.Is(err, mongo.ErrClientDisconnected):
		return ErrStoreUnavailable
	}
	var se mongo.ServerError
	if errors.As(err, &se) && se.HasErrorLabel("TransientTransactionError") {
		return ErrStoreTimeout
	}
	return err
}

// Retryable reports whether err is safe to retry for an idempotent read.
func Retryable(err error) bool {
	return errors.Is(err, ErrStoreTimeout)
}

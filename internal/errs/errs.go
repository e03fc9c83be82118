// Package errs defines the error taxonomy shared by every pipeline stage.
// Each stage returns a classified error; the orchestrator maps the kind to
// a response status and the delivery adapter maps retryability to
// redelivery.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	KindMalformedEvent    Kind = "malformed_event"
	KindObjectNotFound    Kind = "object_not_found"
	KindUnsupportedFormat Kind = "unsupported_format"
	KindTransientStore    Kind = "transient_store"
	KindWrite             Kind = "write"
	KindUnexpected        Kind = "unexpected"
)

// Error carries the kind and the stage that produced the failure.
type Error struct {
	Kind  Kind
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error for a stage.
func New(kind Kind, stage string, err error) *Error {
	return &Error{Kind: kind, Stage: stage, Err: err}
}

// Newf creates a classified error from a format string.
func Newf(kind Kind, stage string, format string, args ...any) *Error {
	return &Error{Kind: kind, Stage: stage, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the kind from err, defaulting to KindUnexpected for
// anything that escaped classification.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnexpected
}

// StageOf reports the stage recorded on err, or "unknown".
func StageOf(err error) string {
	var ce *Error
	if errors.As(err, &ce) && ce.Stage != "" {
		return ce.Stage
	}
	return "unknown"
}

// IsRetryable reports whether redelivering the triggering event could
// succeed. Only transient store failures qualify; decode and event errors
// are deterministic given the same bytes.
func IsRetryable(err error) bool {
	return KindOf(err) == KindTransientStore
}

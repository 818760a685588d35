package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the transport layer.
type Kind int

const (
	// KindInput means the request was missing or malformed. Not retried.
	KindInput Kind = iota + 1
	// KindInternal means grading itself failed (provider unavailable, bad vectors).
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by the orchestrator.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InputError builds a KindInput error with a client-facing message.
func InputError(message string, err error) *Error {
	return &Error{Kind: KindInput, Message: message, Err: err}
}

// InternalError builds a KindInternal error; the message is err's text.
func InternalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: err.Error(), Err: err}
}

// KindOf returns the kind of err, treating unclassified errors as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

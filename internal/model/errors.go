package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures inside the resolver
type ErrorKind string

const (
	KindInputTooShort       ErrorKind = "input_too_short"
	KindIndexInconsistent   ErrorKind = "index_inconsistent"
	KindExternalUnavailable ErrorKind = "external_source_unavailable"
	KindSynthesisDegenerate ErrorKind = "synthesis_degenerate"
	KindQueueFull           ErrorKind = "queue_full"
	KindNotFound            ErrorKind = "not_found"
	KindInvalidInput        ErrorKind = "invalid_input"
)

// Sentinel values for errors.Is comparisons
var (
	ErrInputTooShort       = &Error{Kind: KindInputTooShort}
	ErrIndexInconsistent   = &Error{Kind: KindIndexInconsistent}
	ErrExternalUnavailable = &Error{Kind: KindExternalUnavailable}
	ErrSynthesisDegenerate = &Error{Kind: KindSynthesisDegenerate}
	ErrQueueFull           = &Error{Kind: KindQueueFull}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
)

// Error is a classified resolver error
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewError wraps err with a kind and the operation that failed
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same kind
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

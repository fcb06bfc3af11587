// Package errors classifies pipeline failures so the CLI can report them
// and pick an exit status that separates bad input from environment problems.
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a failure.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindUnknownTemplate     Kind = "unknown_template"
	KindMissingRequiredFact Kind = "missing_required_fact"
	KindWrite               Kind = "write"
	KindUsage               Kind = "usage"
	KindInternal            Kind = "internal"
)

// Exit statuses returned by the CLI.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitBadInput    = 2
	ExitEnvironment = 3
)

// AppError is a classified error with an optional underlying cause.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func New(kind Kind, message string, cause error) error {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

// NotFound reports a missing or non-directory input path.
func NotFound(path string, cause error) error {
	return New(KindNotFound, fmt.Sprintf("project path %q not found or not a directory", path), cause)
}

func UnknownTemplate(message string) error {
	return New(KindUnknownTemplate, message, nil)
}

func MissingRequiredFact(message string) error {
	return New(KindMissingRequiredFact, message, nil)
}

// Write reports a filesystem failure while persisting output.
func Write(message string, cause error) error {
	return New(KindWrite, message, cause)
}

func Usage(message string) error {
	return New(KindUsage, message, nil)
}

func Internal(message string, cause error) error {
	return New(KindInternal, message, cause)
}

// KindOf returns the kind of the first AppError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ae *AppError
	if !errors.As(err, &ae) {
		return ExitFailure
	}
	switch ae.Kind {
	case KindNotFound, KindUnknownTemplate, KindMissingRequiredFact, KindUsage:
		return ExitBadInput
	case KindWrite:
		return ExitEnvironment
	default:
		return ExitFailure
	}
}

// Package errors provides structured error handling for the timing engine.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindValidation indicates timing input outside its valid range.
	KindValidation
	// KindParsing indicates a malformed easing or keyword string.
	KindParsing
	// KindConfig indicates an unreadable or inconsistent effect description.
	KindConfig
	// KindInvariant indicates a violated engine invariant.
	KindInvariant
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindParsing:
		return "parsing"
	case KindConfig:
		return "config"
	case KindInvariant:
		return "invariant"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// TimingError represents a structured error raised by the timing engine.
type TimingError struct {
	// Op is the operation that failed (e.g., "animation.NewTimingParams").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Field names the offending input field, if applicable.
	Field string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *TimingError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s [%s] field=%s: %v", e.Op, e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *TimingError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "cmd.sample").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a failure to parse a textual timing value.
type ParseError struct {
	// DataType is the expected type name (e.g., "easing").
	DataType string
	// Input is the text that failed to parse.
	Input string
	// Reason describes what was wrong, if known.
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("failed to parse %s from %q: %s", e.DataType, e.Input, e.Reason)
	}
	return fmt.Sprintf("failed to parse %s from %q", e.DataType, e.Input)
}

// InvariantError represents a broken engine invariant. These are programming
// defects: inputs reaching the engine are validated upstream.
type InvariantError struct {
	// Op is the operation whose invariant failed.
	Op string
	// Message describes the invariant.
	Message string
	// StackTrace contains the call stack at the time of the failure.
	StackTrace string
	// Timestamp is when the failure occurred.
	Timestamp time.Time
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", e.Op, e.Message)
}

// ErrorHandler receives errors reported by the timing engine.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *TimingError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleInvariant is called right before an invariant failure panics.
	HandleInvariant(err *InvariantError)
}

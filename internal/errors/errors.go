// Package errors provides structured error types for tenfoot.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindConfig
	KindRowNotFound
	KindIndexOutOfRange
	KindFocusAttemptFailed
	KindRetriesExhausted
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindConfig:
		return "configuration error"
	case KindRowNotFound:
		return "row not found"
	case KindIndexOutOfRange:
		return "index out of range"
	case KindFocusAttemptFailed:
		return "focus attempt failed"
	case KindRetriesExhausted:
		return "retries exhausted"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for tenfoot.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Focus errors

// RowNotFound reports a row index outside [0, total).
func RowNotFound(row, total int) error {
	return E(Op("focus.Resolve"), KindRowNotFound, fmt.Sprintf("row %d not in [0, %d)", row, total))
}

// RowKeyNotFound reports a row key that is no longer part of the layout.
func RowKeyNotFound(key string) error {
	return E(Op("focus.Resolve"), KindRowNotFound, fmt.Sprintf("row %q no longer exists", key))
}

// IndexOutOfRange reports a position the handle pool refuses to address.
func IndexOutOfRange(row, item, limit int) error {
	return E(Op("focus.GetOrCreate"), KindIndexOutOfRange, fmt.Sprintf("position (%d,%d) outside per-row limit %d", row, item, limit))
}

func FocusAttemptFailed(row, item, attempt int) error {
	return E(Op("focus.RequestFocus"), KindFocusAttemptFailed, fmt.Sprintf("attempt %d on (%d,%d) was not attachable", attempt, row, item))
}

func RetriesExhausted(row, item, attempts int) error {
	return E(Op("focus.Restore"), KindRetriesExhausted, fmt.Sprintf("gave up on (%d,%d) after %d attempts", row, item, attempts))
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// State errors
func StateLoadFailed(screen string, err error) error {
	return E(Op("store.Load"), KindIO, fmt.Sprintf("failed to load focus state for %s", screen), err)
}

func StateSaveFailed(screen string, err error) error {
	return E(Op("store.Save"), KindIO, fmt.Sprintf("failed to save focus state for %s", screen), err)
}

// ScenarioNotFound reports an unknown demo scenario name.
func ScenarioNotFound(name string) error {
	return E(Op("demo.Get"), KindNotFound, fmt.Sprintf("scenario %s not found", name))
}

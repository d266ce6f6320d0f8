// Package errors provides structured error handling for the ricochet runtime.
package errors

import "fmt"

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindIndex indicates an out-of-range list access.
	KindIndex
	// KindContract indicates an external collaborator violating its contract,
	// such as an observable that provides no initial value when one is required.
	KindContract
	// KindRender indicates a rendering error.
	KindRender
	// KindSync indicates a list mirroring error.
	KindSync
)

func (k Kind) String() string {
	switch k {
	case KindIndex:
		return "index"
	case KindContract:
		return "contract"
	case KindRender:
		return "render"
	case KindSync:
		return "sync"
	default:
		return "unknown"
	}
}

// Error represents a structured error in the ricochet runtime.
type Error struct {
	// Op is the operation that failed (e.g., "render.Render").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time the error was
	// reported, when one was captured.
	StackTrace string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs a structured error from a plain message.
func New(op string, kind Kind, msg string) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf("%s", msg)}
}

// Newf constructs a structured error from a format string.
func Newf(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// IndexError reports a list access outside the valid range. It is raised as
// a panic, matching the behavior of out-of-range slice access: invalid
// indices are programmer errors, not recoverable conditions.
type IndexError struct {
	// Op is the operation that failed (e.g., "list.Set").
	Op string
	// Index is the offending index.
	Index int
	// Length is the list length at the time of the access.
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range with length %d", e.Op, e.Index, e.Length)
}

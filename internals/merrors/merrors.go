// Package merrors defines the error kinds modkit reports to its users.
// Callers use the kind to tell "fix your input" from "try again" from
// "inspect the gradle log".
package merrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error
type Kind uint8

const (
	// KindUnknown is used for errors that were never classified
	KindUnknown Kind = iota
	// KindUsage means the input (declarations, versions, project layout) is wrong
	KindUsage
	// KindTransient means an upstream service failed temporarily
	KindTransient
	// KindBuild means the external build tool failed
	KindBuild
	// KindFilesystem means reading or writing the project tree failed
	KindFilesystem
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage error"
	case KindTransient:
		return "temporary error"
	case KindBuild:
		return "build error"
	case KindFilesystem:
		return "filesystem error"
	default:
		return "error"
	}
}

// Error is an error that might get displayed to the user
type Error struct {
	Kind Kind
	Err  string
	Help string
	// Cause is the underlying error (if any)
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Err, e.Cause)
	}
	return e.Err
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors of the same kind and message. This allows sentinel errors
// like `ErrMissingTexture` to be used with errors.Is after they were copied
// with `WithCause`
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Err == e.Err
}

// WithCause returns a copy of e that wraps cause
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.Cause = cause
	return &c
}

// Usage returns a new usage error
func Usage(format string, a ...interface{}) *Error {
	return &Error{Kind: KindUsage, Err: fmt.Sprintf(format, a...)}
}

// Transient returns a new transient error
func Transient(cause error, format string, a ...interface{}) *Error {
	return &Error{Kind: KindTransient, Err: fmt.Sprintf(format, a...), Cause: cause}
}

// Filesystem returns a new filesystem error
func Filesystem(cause error, format string, a ...interface{}) *Error {
	return &Error{Kind: KindFilesystem, Err: fmt.Sprintf(format, a...), Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

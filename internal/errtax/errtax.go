// Package errtax defines the error taxonomy used to map failures to the
// program's documented exit codes. It follows the const-error-plus-wrap
// idiom: a Category is itself a usable error value, and Wrap attaches a
// cause while keeping errors.Is(err, SomeCategory) true.
package errtax

import (
	"fmt"
	"strings"
)

// ErrSeparator joins a taxonomy message to its wrapped cause in Error().
const ErrSeparator = " -- "

// Category is a const error type so taxonomy membership can be tested with
// errors.Is even after a cause has been wrapped onto it.
type Category string

func (c Category) Error() string {
	return string(c)
}

// Is reports whether target is this category, or a categoryError wrapping it.
func (c Category) Is(target error) bool {
	return c.Error() == target.Error() || strings.HasPrefix(target.Error(), c.Error()+ErrSeparator)
}

// Wrap attaches cause to this category, producing an error that still
// satisfies errors.Is(err, c) and unwraps to cause.
func (c Category) Wrap(cause error) error {
	return categoryError{category: c, cause: cause}
}

type categoryError struct {
	category Category
	cause    error
}

func (e categoryError) Error() string {
	if e.cause == nil {
		return e.category.Error()
	}
	return fmt.Sprintf("%s%s%v", e.category, ErrSeparator, e.cause)
}

func (e categoryError) Is(target error) bool {
	return e.category.Is(target)
}

func (e categoryError) Unwrap() error {
	return e.cause
}

// The five taxonomy categories from the design: usage, acquisition, I/O,
// malformed input, and resource exhaustion.
const (
	// Usage is a CLI usage error (missing/extra args, bad flag). Exit code 2.
	Usage Category = "usage error"
	// Acquire is an input-acquisition failure (file open, URL fetch). Exit code 1.
	Acquire Category = "input acquisition error"
	// IO is a read/write failure on an already-open stream. Exit code 1.
	IO Category = "i/o error"
	// Malformed marks a skipped, non-fatal malformed input line.
	Malformed Category = "malformed line"
	// ResourceExhausted is a fatal out-of-memory/resource condition. Exit code 1.
	ResourceExhausted Category = "resource exhausted"
)

// ExitCode maps an error produced by this package to the process exit code
// documented in the design. Errors not recognized as part of the taxonomy
// default to 1 (generic fatal failure).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if Usage.Is(err) {
		return 2
	}
	return 1
}

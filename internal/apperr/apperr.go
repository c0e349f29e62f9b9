package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by where it was detected.
type Kind int

const (
	KindUnknown Kind = iota
	KindUsage
	KindIO
	KindParse
	KindSchema
	KindTemplate
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	case KindSchema:
		return "schema"
	case KindTemplate:
		return "template"
	default:
		return "unknown"
	}
}

// Error is a categorized failure. Op names the operation or field that failed,
// Err carries the underlying cause and may be nil.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return e.Kind.String() + " error"
	case e.Err == nil:
		return fmt.Sprintf("%s error: %s", e.Kind, e.Op)
	case e.Op == "":
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Usage reports a user-correctable invocation problem.
func Usage(op string, err error) *Error { return newError(KindUsage, op, err) }

// IO reports a failed read or write.
func IO(op string, err error) *Error { return newError(KindIO, op, err) }

// Parse reports a document that is not well-formed.
func Parse(op string, err error) *Error { return newError(KindParse, op, err) }

// Schema reports a well-formed document with missing or invalid content.
func Schema(op string, err error) *Error { return newError(KindSchema, op, err) }

// Template reports a template that could not be fully resolved.
func Template(op string, err error) *Error { return newError(KindTemplate, op, err) }

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err's chain contains an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitCode maps err to the process exit status. Every failure exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

package vellum

import (
	"fmt"
)

// ErrorKind is the stable, machine-readable classification of an Error.
type ErrorKind uint8

const (
	// KindValidation marks invalid construction input: malformed coordinates,
	// scene configuration, or violated shape constraints.
	KindValidation ErrorKind = iota + 1
	// KindIllegalOperation marks an operation that is not allowed in the
	// receiver's current state, such as using events on a detached shape.
	KindIllegalOperation
	// KindArgument marks arguments of the wrong shape, such as a negative
	// animation duration or a missing callback.
	KindArgument
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindIllegalOperation:
		return "illegal operation"
	case KindArgument:
		return "invalid argument"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is returned by every validating operation in the package.
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
	Err  error
}

// Sentinels for errors.Is. They match any Error of the same kind.
var (
	ErrValidation       = &Error{Kind: KindValidation}
	ErrIllegalOperation = &Error{Kind: KindIllegalOperation}
	ErrArgument         = &Error{Kind: KindArgument}
)

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "vellum: " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

func newError(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func validationError(op, format string, args ...any) error {
	return newError(KindValidation, op, format, args...)
}

func illegalOperation(op, format string, args ...any) error {
	return newError(KindIllegalOperation, op, format, args...)
}

func argumentError(op, format string, args ...any) error {
	return newError(KindArgument, op, format, args...)
}

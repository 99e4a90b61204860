package domain

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the error taxonomy. Callers classify failures with
// errors.Is against these; the message shown to API clients comes from the
// wrapping Error value.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrEmptyInput = errors.New("empty input")
)

// Error carries a client-facing message plus the sentinel kind it unwraps to.
// Error() returns only the message so the bulk path can collect clean
// per-record strings like "duplicate email: a@b.com".
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func Validationf(format string, args ...any) error {
	return &Error{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &Error{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

func EmptyInputf(format string, args ...any) error {
	return &Error{kind: ErrEmptyInput, msg: fmt.Sprintf(format, args...)}
}

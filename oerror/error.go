package oerror

import "fmt"

// Error is the error type returned for invalid configuration, scenario input and recovered tick failures.
type Error struct {
	msg   string
	cause error
}

// New formats a new Error.
func New(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Wrap formats a new Error caused by cause.
func Wrap(cause error, format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...), cause: cause}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

// Unwrap returns the cause of the error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

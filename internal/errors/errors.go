// Package errors is the error taxonomy shared by the domain, the repositories
// and the services. Callers branch on the Code, never on message text.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error.
type Code string

const (
	CodeUnknown            Code = "unknown"
	CodeInvalidArgument    Code = "invalid_argument"
	CodeNotFound           Code = "not_found"
	CodeAlreadyExists      Code = "already_exists"
	CodeFailedPrecondition Code = "failed_precondition"
	CodeValidation         Code = "validation"
	// CodeUnavailable marks a failure of a backing dependency (Redis, the 5e API).
	CodeUnavailable        Code = "unavailable"
)

// Error is a coded error with an optional cause and structured metadata.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta attaches a key/value pair and returns the same error for chaining.
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any, 1)
	}
	e.Meta[key] = value
	return e
}

// find returns the first *Error in the chain.
func find(err error) (*Error, bool) {
	var coded *Error
	if err == nil || !errors.As(err, &coded) {
		return nil, false
	}
	return coded, true
}

// New creates an error with a fixed message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

func Validation(message string) *Error { return New(CodeValidation, message) }

func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// Wrap adds context to err. A coded cause keeps its code and a copy of its
// metadata; anything else becomes CodeUnknown. Wrap(nil) is nil.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{Code: CodeUnknown, Message: message, Cause: err}
	if coded, ok := find(err); ok {
		wrapped.Code = coded.Code
		for k, v := range coded.Meta {
			wrapped.WithMeta(k, v)
		}
	}
	return wrapped
}

func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err and forces the code regardless of the cause's own.
func WrapWithCode(err error, code Code, message string) *Error {
	wrapped := Wrap(err, message)
	if wrapped != nil {
		wrapped.Code = code
	}
	return wrapped
}

// Is reports whether the first coded error in the chain carries code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

func IsNotFound(err error) bool { return Is(err, CodeNotFound) }
func IsInvalidArgument(err error) bool { return Is(err, CodeInvalidArgument) }
func IsAlreadyExists(err error) bool { return Is(err, CodeAlreadyExists) }
func IsFailedPrecondition(err error) bool { return Is(err, CodeFailedPrecondition) }
func IsValidation(err error) bool { return Is(err, CodeValidation) }
func IsUnavailable(err error) bool { return Is(err, CodeUnavailable) }

// GetCode returns the code of the first coded error in the chain, or
// CodeUnknown. A nil error has no code.
func GetCode(err error) Code {
	if err == nil {
		return ""
	}
	coded, ok := find(err)
	if !ok {
		return CodeUnknown
	}
	return coded.Code
}

// GetMeta returns the metadata of the first coded error in the chain.
func GetMeta(err error) map[string]any {
	coded, ok := find(err)
	if !ok {
		return nil
	}
	return coded.Meta
}

// Package apperr defines the error taxonomy returned to callers.
// Each error carries a stable code and message; the underlying cause is
// kept for logging only and is never serialized in responses.
package apperr

import (
	"errors"
	"fmt"
)

// Code identifies a caller-facing failure class.
type Code string

const (
	CodeAuthenticationRequired Code = "AUTHENTICATION_REQUIRED"
	CodeAuthenticationFailed   Code = "AUTHENTICATION_FAILED"
	CodeNotAuthorized          Code = "NOT_AUTHORIZED"
	CodeNotFound               Code = "NOT_FOUND"
	CodeConflict               Code = "CONFLICT"
	CodeInternal               Code = "INTERNAL"
)

// Error is a typed failure with a stable code and message.
type Error struct {
	Code    Code
	Message string
	Err     error // internal cause, logged but not exposed
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two apperr errors by code, so errors.Is works against the
// package-level sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an error with the given code and message, keeping cause for
// internal logging.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Err: cause}
}

// Sentinels for errors.Is checks. Messages here are the stable wording
// surfaced to callers.
var (
	ErrAuthenticationRequired = New(CodeAuthenticationRequired, "authentication required")
	ErrAuthenticationFailed   = New(CodeAuthenticationFailed, "invalid email or password")
	ErrNotAuthorized          = New(CodeNotAuthorized, "not authorized")
	ErrNotFound               = New(CodeNotFound, "not found")
	ErrConflict               = New(CodeConflict, "already exists")
	ErrInternal               = New(CodeInternal, "internal error")
)

// CodeOf extracts the code of an error, defaulting to CodeInternal for
// anything outside the taxonomy.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-facing message of an error. Causes of
// errors outside the taxonomy are not leaked.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ErrInternal.Message
}

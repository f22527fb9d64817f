package services

import "errors"

// ErrorCode is the closed taxonomy of terminal failures. Every guard
// violation maps to exactly one code; none are ever retried.
type ErrorCode string

const (
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeForbidden         ErrorCode = "FORBIDDEN"
	CodeInvalidState      ErrorCode = "INVALID_STATE"
	CodeNoDriverAvailable ErrorCode = "NO_DRIVER_AVAILABLE"
	CodeValidation        ErrorCode = "VALIDATION_ERROR"
	CodeInternal          ErrorCode = "INTERNAL"
)

// Error carries a stable code alongside the human-readable message
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

func InvalidState(msg string) *Error {
	return &Error{Code: CodeInvalidState, Message: msg}
}

func NoDriverAvailable(msg string) *Error {
	return &Error{Code: CodeNoDriverAvailable, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// CodeOf extracts the taxonomy code from any error
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

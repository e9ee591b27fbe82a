// Package errors gives wordwall failures a machine-readable [Code].
//
// The CLI prints [UserMessage] and the HTTP server answers with
// [HTTPStatus], so a duplicate word reads "word "Tree" already exists" on
// the terminal and arrives as 409 over the API:
//
//	if err := store.Add(ctx, "Tree", "树"); errors.Is(err, errors.ErrCodeDuplicateWord) {
//	    // offer to edit the existing entry
//	}
//
//	return errors.Wrap(errors.ErrCodeStorage, err, "save %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle    Code = "INVALID_STYLE"
	ErrCodeInvalidBackend  Code = "INVALID_BACKEND"
	ErrCodeDuplicateWord   Code = "DUPLICATE_WORD"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeWordNotFound Code = "WORD_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Storage and network errors
	ErrCodeStorage     Code = "STORAGE_ERROR"
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Authentication errors
	ErrCodeUnauthorized Code = "UNAUTHORIZED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// prefix. Storage, network and timeout errors keep their cause. Other errors
// print as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch e.Code {
	case ErrCodeStorage, ErrCodeNetwork, ErrCodeTimeout:
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
	}
	return e.Message
}

var httpStatus = map[Code]int{
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidGeometry: http.StatusBadRequest,
	ErrCodeInvalidFormat:   http.StatusBadRequest,
	ErrCodeInvalidStyle:    http.StatusBadRequest,
	ErrCodeInvalidBackend:  http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeWordNotFound:    http.StatusNotFound,
	ErrCodeFileNotFound:    http.StatusNotFound,
	ErrCodeDuplicateWord:   http.StatusConflict,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeUnsupported:     http.StatusNotImplemented,
	ErrCodeNetwork:         http.StatusBadGateway,
	ErrCodeStorage:         http.StatusBadGateway,
	ErrCodeTimeout:         http.StatusGatewayTimeout,
}

// HTTPStatus maps an error to the status the API responds with. Only the
// outermost *Error code counts; anything unknown is a 500.
func HTTPStatus(err error) int {
	if status, ok := httpStatus[GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

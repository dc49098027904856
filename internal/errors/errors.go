package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a conflict with existing data (e.g., unique constraint violation).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeForeignKey indicates a foreign key constraint violation.
	ErrCodeForeignKey ErrorCode = "foreign_key"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"

	// ErrCodeInvalidCredentials indicates a username/password pair that did
	// not authenticate.
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
	// ErrCodeReservedUsername indicates a signup with the reserved admin name.
	ErrCodeReservedUsername ErrorCode = "reserved_username"
	// ErrCodeRegistrationIncomplete indicates a provider call that raised no
	// error but produced no user record.
	ErrCodeRegistrationIncomplete ErrorCode = "registration_incomplete"
	// ErrCodeExpiredSession indicates a persisted session whose expiry has
	// passed.
	ErrCodeExpiredSession ErrorCode = "expired_session"
	// ErrCodeProviderUnavailable indicates the identity provider could not
	// be reached or rejected the call for transport-level reasons.
	ErrCodeProviderUnavailable ErrorCode = "provider_unavailable"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// InvalidCredentials creates an InvalidCredentials error carrying the
// backing store's message verbatim.
func InvalidCredentials(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidCredentials, Message: message}
}

// ReservedUsername creates a ReservedUsername error.
func ReservedUsername(username string) *AppError {
	return &AppError{
		Code:    ErrCodeReservedUsername,
		Message: fmt.Sprintf("username %q is reserved", username),
		Field:   "username",
	}
}

// RegistrationIncomplete creates a RegistrationIncomplete error.
func RegistrationIncomplete() *AppError {
	return &AppError{
		Code:    ErrCodeRegistrationIncomplete,
		Message: "registration did not produce a user record",
	}
}

// ExpiredSession creates an ExpiredSession error.
func ExpiredSession() *AppError {
	return &AppError{Code: ErrCodeExpiredSession, Message: "session expired"}
}

// ProviderUnavailable wraps a provider transport failure, surfacing the
// provider's message to the caller.
func ProviderUnavailable(err error) *AppError {
	return &AppError{
		Code:    ErrCodeProviderUnavailable,
		Message: "identity provider unavailable",
		Cause:   err,
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool { return isCode(err, ErrCodeConflict) }

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsForeignKey checks if an error is a ForeignKey error.
func IsForeignKey(err error) bool { return isCode(err, ErrCodeForeignKey) }

// IsInvalidCredentials checks if an error is an InvalidCredentials error.
func IsInvalidCredentials(err error) bool { return isCode(err, ErrCodeInvalidCredentials) }

// IsReservedUsername checks if an error is a ReservedUsername error.
func IsReservedUsername(err error) bool { return isCode(err, ErrCodeReservedUsername) }

// IsRegistrationIncomplete checks if an error is a RegistrationIncomplete error.
func IsRegistrationIncomplete(err error) bool { return isCode(err, ErrCodeRegistrationIncomplete) }

// IsExpiredSession checks if an error is an ExpiredSession error.
func IsExpiredSession(err error) bool { return isCode(err, ErrCodeExpiredSession) }

// IsProviderUnavailable checks if an error is a ProviderUnavailable error.
func IsProviderUnavailable(err error) bool { return isCode(err, ErrCodeProviderUnavailable) }

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Storage constraint violations
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrStudentIDAlreadyExists = errors.New("student ID already exists")
)

// ValidationKind names the rule a field failed.
type ValidationKind string

const (
	KindEmptyField         ValidationKind = "EMPTY_FIELD"
	KindInvalidCharacters  ValidationKind = "INVALID_CHARACTERS"
	KindTooShort           ValidationKind = "TOO_SHORT"
	KindInvalidFormat      ValidationKind = "INVALID_FORMAT"
	KindMissingUppercase   ValidationKind = "MISSING_UPPERCASE"
	KindMissingSpecialChar ValidationKind = "MISSING_SPECIAL_CHAR"
	KindEmailInUse         ValidationKind = "EMAIL_IN_USE"
	KindStudentIDInUse     ValidationKind = "STUDENT_ID_IN_USE"
)

// Per-kind sentinels, usable with errors.Is against a *ValidationError.
var (
	ErrEmptyField         = errors.New("field is empty")
	ErrInvalidCharacters  = errors.New("field contains invalid characters")
	ErrTooShort           = errors.New("field is too short")
	ErrInvalidFormat      = errors.New("field has an invalid format")
	ErrMissingUppercase   = errors.New("password must contain an uppercase letter")
	ErrMissingSpecialChar = errors.New("password must contain one of !@#$%^&*")
	ErrEmailInUse         = errors.New("email already in use")
	ErrStudentIDInUse     = errors.New("student ID already in use")
)

var kindSentinels = map[ValidationKind]error{
	KindEmptyField:         ErrEmptyField,
	KindInvalidCharacters:  ErrInvalidCharacters,
	KindTooShort:           ErrTooShort,
	KindInvalidFormat:      ErrInvalidFormat,
	KindMissingUppercase:   ErrMissingUppercase,
	KindMissingSpecialChar: ErrMissingSpecialChar,
	KindEmailInUse:         ErrEmailInUse,
	KindStudentIDInUse:     ErrStudentIDInUse,
}

// ValidationError reports the first rule a submitted field failed.
// It is always recoverable by the caller resubmitting corrected input.
type ValidationError struct {
	Field string
	Kind  ValidationKind
}

// NewValidationError creates a ValidationError for field
func NewValidationError(field string, kind ValidationKind) *ValidationError {
	return &ValidationError{Field: field, Kind: kind}
}

// Error implements error interface
func (e *ValidationError) Error() string {
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		return fmt.Sprintf("%s: %v", e.Field, sentinel)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Kind)
}

// Is matches ErrValidationFailed and the sentinel of the error's kind
func (e *ValidationError) Is(target error) bool {
	if target == ErrValidationFailed {
		return true
	}
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// Conflict reports whether the failure is a uniqueness violation rather than bad input.
func (e *ValidationError) Conflict() bool {
	return e.Kind == KindEmailInUse || e.Kind == KindStudentIDInUse
}

// AsValidationError extracts a *ValidationError from err's chain
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AuthReason records internally why an authentication attempt was rejected.
type AuthReason string

const (
	ReasonInvalidFormat      AuthReason = "INVALID_FORMAT"
	ReasonInvalidCredentials AuthReason = "INVALID_CREDENTIALS"
)

// AuthError is a rejected authentication attempt. Its message is identical for
// every reason so callers cannot tell an unknown email from a wrong password.
type AuthError struct {
	Reason AuthReason
}

// NewAuthError creates an AuthError with the given reason
func NewAuthError(reason AuthReason) *AuthError {
	return &AuthError{Reason: reason}
}

// Error implements error interface
func (e *AuthError) Error() string {
	return ErrInvalidCredentials.Error()
}

// Is matches ErrInvalidCredentials
func (e *AuthError) Is(target error) bool {
	return target == ErrInvalidCredentials
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

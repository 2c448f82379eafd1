package dto

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// APIResponse is the envelope for every JSON response
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in a successful envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewFailureResponse wraps an error detail in a failed envelope
func NewFailureResponse(detail *ErrorDetail) APIResponse {
	return APIResponse{
		Success:   false,
		Error:     detail,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a standard success message
type SuccessResponse struct {
	Message string `json:"message"`
}

// HandleValidationError converts a binding error into an error detail. Field
// rule failures from validator are collected into Details.
func HandleValidationError(err error) *ErrorDetail {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return NewErrorDetail(ErrorCodeInvalidRequest, "Invalid request format").WithDetails(err.Error())
	}

	collected := NewValidationErrors()
	for _, fe := range fieldErrors {
		collected.AddError(fe.Field(), formatValidationError(fe))
	}
	return NewErrorDetail(ErrorCodeInvalidRequest, "Invalid request parameters").WithDetails(collected.Errors)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}

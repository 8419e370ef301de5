package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a gateway integration failure
type ErrorCategory string

const (
	CategoryTransportFailure  ErrorCategory = "transport_failure"
	CategoryAuthFailure       ErrorCategory = "auth_failure"
	CategoryMalformedResponse ErrorCategory = "malformed_response"
	CategoryGatewayRejection  ErrorCategory = "gateway_rejection"
	CategoryValidationFailure ErrorCategory = "validation_failure"
)

// GatewayError represents a failed interaction with the payment gateway
type GatewayError struct {
	Code           string
	Message        string
	GatewayMessage string
	Category       ErrorCategory
}

func (e *GatewayError) Error() string {
	if e.GatewayMessage != "" {
		return fmt.Sprintf("%s: %s (gateway: %s)", e.Code, e.Message, e.GatewayMessage)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewGatewayError creates a new gateway error
func NewGatewayError(code, message string, category ErrorCategory) *GatewayError {
	return &GatewayError{
		Code:     code,
		Message:  message,
		Category: category,
	}
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

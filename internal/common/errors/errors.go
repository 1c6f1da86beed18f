// Package errors provides the standardized error type shared by every dashboard tool.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidArgument  ErrorCode = "INVALID_ARGUMENT"

	ErrCodeToolNotFound  ErrorCode = "TOOL_NOT_FOUND"
	ErrCodeToolDisabled  ErrorCode = "TOOL_DISABLED"
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"

	ErrCodeSecretUnavailable ErrorCode = "SECRET_UNAVAILABLE"

	ErrCodeExternalService  ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeUpstreamRejected ErrorCode = "UPSTREAM_REJECTED"
	ErrCodeTimeout          ErrorCode = "TIMEOUT_ERROR"

	ErrCodeContainerCommandFailed ErrorCode = "CONTAINER_COMMAND_FAILED"
	ErrCodeMediaContainerFailed   ErrorCode = "MEDIA_CONTAINER_FAILED"
	ErrCodeNoResults              ErrorCode = "NO_RESULTS"
	ErrCodeSMTP                   ErrorCode = "SMTP_ERROR"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError reports form fields that failed validation. details lists them.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Invalid form input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidArgumentError(field, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidArgument,
		Message:   fmt.Sprintf("Invalid value for %s", field),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewToolNotFoundError(tool string) *StandardError {
	return &StandardError{
		Code:      ErrCodeToolNotFound,
		Message:   "Unknown tool",
		Details:   tool,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewToolDisabledError(tool string) *StandardError {
	return &StandardError{
		Code:      ErrCodeToolDisabled,
		Message:   "Tool is disabled",
		Details:   tool,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   "Tool is not configured",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSecretUnavailableError never carries the secret value, only its name.
func NewSecretUnavailableError(name string, err error) *StandardError {
	details := name
	if err != nil {
		details = fmt.Sprintf("%s: %s", name, err.Error())
	}
	return &StandardError{
		Code:      ErrCodeSecretUnavailable,
		Message:   "Credential unavailable",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalService,
		Message:   fmt.Sprintf("%s Error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamRejectedError carries the raw response body of a non-success reply.
func NewUpstreamRejectedError(service string, statusCode int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamRejected,
		Message:   fmt.Sprintf("%s Error", service),
		Details:   body,
		Retryable: false,
		Metadata:  map[string]interface{}{"statusCode": statusCode},
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTimeout,
		Message:   fmt.Sprintf("%s timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewContainerCommandError(command string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContainerCommandFailed,
		Message:   "Container command failed",
		Details:   fmt.Sprintf("%s: %s", command, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMediaContainerError carries the raw container-creation response.
func NewMediaContainerError(body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMediaContainerFailed,
		Message:   "Container Error",
		Details:   body,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewSMTPError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSMTP,
		Message:   "Email Error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// FromCallError maps a failed outbound call to a timeout or external service error.
func FromCallError(service string, err error) *StandardError {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(service, err)
	}
	return NewExternalServiceError(service, err)
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError unwraps err to a StandardError when one is in the chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ToOutcomeMessage returns the text shown to the user for err: the message
// followed by the raw details, so upstream error text is surfaced verbatim.
func ToOutcomeMessage(err error) string {
	if err == nil {
		return ""
	}
	stdErr, ok := AsStandardError(err)
	if !ok {
		return err.Error()
	}
	if stdErr.Details == "" {
		return stdErr.Message
	}
	return fmt.Sprintf("%s: %s", stdErr.Message, stdErr.Details)
}

// IsRetryableErrorCode reports whether the failure is transient. The dashboard
// never retries on its own; the flag is informational.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeExternalService, ErrCodeTimeout, ErrCodeSMTP:
		return true
	default:
		return false
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.HasPrefix(codeStr, "TOOL_") || strings.Contains(codeStr, "CONFIGURATION"):
		return "ROUTING"
	case strings.Contains(codeStr, "SECRET"):
		return "CREDENTIALS"
	case strings.Contains(codeStr, "CONTAINER"):
		return "CONTAINER"
	case strings.Contains(codeStr, "SMTP"):
		return "EMAIL"
	case strings.Contains(codeStr, "EXTERNAL") || strings.Contains(codeStr, "UPSTREAM") ||
		strings.Contains(codeStr, "TIMEOUT") || strings.Contains(codeStr, "NO_RESULTS"):
		return "UPSTREAM"
	default:
		return "OTHER"
	}
}

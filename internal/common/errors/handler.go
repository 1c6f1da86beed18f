// internal/common/errors/handler.go
package errors

import (
	"context"
	stderrors "errors"
	"time"
)

// ErrorHandler normalizes and logs tool failures before they are shown to the user.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleToolError returns err as a StandardError and logs it. Validation
// failures are user mistakes and are logged at warn level.
func (h *ErrorHandler) HandleToolError(tool string, err error) *StandardError {
	stdErr := h.normalizeError(err)
	h.logError(tool, stdErr)
	return stdErr
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError("tool", err)
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func (h *ErrorHandler) logError(tool string, stdErr *StandardError) {
	if h.logger == nil {
		return
	}

	fields := map[string]interface{}{
		"tool":          tool,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}

	switch stdErr.Code {
	case ErrCodeValidationFailed, ErrCodeInvalidArgument, ErrCodeToolNotFound:
		h.logger.Warn("Tool submission rejected", fields)
	default:
		h.logger.Error("Tool submission failed", fields)
	}
}

package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	errors []string
	warns  []string
}

func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.errors = append(l.errors, msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.warns = append(l.warns, msg) }

func TestToOutcomeMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain error", stderrors.New("dial tcp: refused"), "dial tcp: refused"},
		{"message only", &StandardError{Code: ErrCodeToolDisabled, Message: "Tool is disabled"}, "Tool is disabled"},
		{"message and details", NewSMTPError(stderrors.New("535 auth failed")), "Email Error: 535 auth failed"},
		{"wrapped", fmt.Errorf("outer: %w", NewMediaContainerError(`{"error":"bad"}`)), `Container Error: {"error":"bad"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToOutcomeMessage(tt.err))
		})
	}
}

func TestFromCallError(t *testing.T) {
	timeout := FromCallError("Geocoder", fmt.Errorf("get: %w", context.DeadlineExceeded))
	assert.Equal(t, ErrCodeTimeout, timeout.Code)
	assert.True(t, timeout.Retryable)

	other := FromCallError("Geocoder", stderrors.New("no such host"))
	assert.Equal(t, ErrCodeExternalService, other.Code)
	assert.Equal(t, "Geocoder Error", other.Message)
}

func TestSecretUnavailableNeverCarriesValue(t *testing.T) {
	err := NewSecretUnavailableError("smtp_password", stderrors.New("secret not found"))
	assert.Equal(t, "smtp_password: secret not found", err.Details)
	assert.Equal(t, ErrCodeSecretUnavailable, err.Code)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeValidationFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidArgument))
	assert.Equal(t, "ROUTING", GetErrorCategory(ErrCodeToolNotFound))
	assert.Equal(t, "CREDENTIALS", GetErrorCategory(ErrCodeSecretUnavailable))
	assert.Equal(t, "CONTAINER", GetErrorCategory(ErrCodeMediaContainerFailed))
	assert.Equal(t, "EMAIL", GetErrorCategory(ErrCodeSMTP))
	assert.Equal(t, "UPSTREAM", GetErrorCategory(ErrCodeUpstreamRejected))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeTimeout))
	assert.False(t, IsRetryableErrorCode(ErrCodeValidationFailed))
}

func TestErrorHandler(t *testing.T) {
	log := &recordingLogger{}
	h := NewErrorHandler(log)

	stdErr := h.HandleToolError("email-send", NewValidationError("missing required fields: to"))
	assert.Equal(t, ErrCodeValidationFailed, stdErr.Code)
	assert.Len(t, log.warns, 1)
	assert.Empty(t, log.errors)

	stdErr = h.HandleToolError("email-send", stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, stdErr.Code)
	assert.Equal(t, "boom", stdErr.Details)
	assert.Len(t, log.errors, 1)

	stdErr = h.HandleToolError("email-send", context.DeadlineExceeded)
	require.NotNil(t, stdErr)
	assert.Equal(t, ErrCodeTimeout, stdErr.Code)
}

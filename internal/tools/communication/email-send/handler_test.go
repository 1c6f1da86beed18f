package emailsend

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tool-dashboard/internal/common/config"
	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
	"tool-dashboard/internal/common/toolkit"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg *Input) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func (m *MockSender) Name() string { return "mock" }

type MockSES struct {
	mock.Mock
}

func (m *MockSES) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ses.SendEmailOutput), args.Error(1)
}

// ==========================
// Test Helpers
// ==========================

func createValidConfig() *Config {
	return &Config{
		Enabled:        true,
		Timeout:        5 * time.Second,
		Provider:       ProviderSMTP,
		SMTPHost:       "smtp.example.com",
		SMTPPort:       587,
		UseTLS:         true,
		PasswordSecret: "smtp_password",
	}
}

func createValidForm() toolkit.Form {
	return toolkit.Form{
		"from":    "alice@example.com",
		"to":      "bob@example.com",
		"subject": "Hello",
		"body":    "Line one\nLine two",
	}
}

func createHandler(t *testing.T, sender Sender) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		CustomConfig: createValidConfig(),
		Logger:       logger.NewTestLogger(t),
		Sender:       sender,
	})
	require.NoError(t, err)
	return h
}

// ==========================
// Handler Creation Tests
// ==========================

func TestHandler_NewHandler(t *testing.T) {
	tests := []struct {
		name    string
		opts    HandlerOptions
		wantErr bool
		errMsg  string
	}{
		{
			name:    "smtp needs a secrets provider",
			opts:    HandlerOptions{CustomConfig: createValidConfig()},
			wantErr: true,
			errMsg:  "secrets provider is required",
		},
		{
			name: "smtp with secrets",
			opts: HandlerOptions{CustomConfig: createValidConfig(), Secrets: secrets.Static{}},
		},
		{
			name:    "ses needs a client",
			opts:    HandlerOptions{CustomConfig: &Config{Enabled: true, Timeout: time.Second, Provider: ProviderSES}},
			wantErr: true,
			errMsg:  "ses client is required",
		},
		{
			name: "unsupported provider",
			opts: HandlerOptions{
				CustomConfig: &Config{Enabled: true, Timeout: time.Second, Provider: "pigeon"},
				Secrets:      secrets.Static{},
			},
			wantErr: true,
			errMsg:  "unsupported provider",
		},
		{
			name: "invalid port",
			opts: HandlerOptions{
				CustomConfig: &Config{Enabled: true, Timeout: time.Second, Provider: ProviderSMTP, SMTPHost: "h", SMTPPort: 70000, PasswordSecret: "p"},
				Secrets:      secrets.Static{},
			},
			wantErr: true,
			errMsg:  "smtp_port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, err := NewHandler(tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, handler)
		})
	}
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	appCfg := &config.Config{}
	appCfg.Integrations.SMTP.Provider = ProviderSES
	appCfg.Integrations.SMTP.Host = "relay.internal"
	appCfg.Integrations.SMTP.Port = 2525
	appCfg.Integrations.SMTP.Username = "mailer"
	appCfg.Integrations.AWS.SES.FromEmail = "noreply@example.com"

	cfg := createConfigFromAppConfig(appCfg, nil)
	assert.Equal(t, ProviderSES, cfg.Provider)
	assert.Equal(t, "relay.internal", cfg.SMTPHost)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, "mailer", cfg.SMTPUsername)
	assert.False(t, cfg.UseTLS)
	assert.Equal(t, "noreply@example.com", cfg.SESFromEmail)
}

// ==========================
// Handle Tests
// ==========================

func TestHandler_Handle_Success(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, &Input{
		From: "alice@example.com", To: "bob@example.com", Subject: "Hello", Body: "Line one\nLine two",
	}).Return("", nil).Once()

	outcome, err := createHandler(t, sender).Handle(context.Background(), createValidForm())
	require.NoError(t, err)
	assert.Equal(t, toolkit.StatusSuccess, outcome.Status)
	assert.Equal(t, "Email sent!", outcome.Message)
	sender.AssertExpectations(t)
}

func TestHandler_Handle_MissingFieldOpensNoSession(t *testing.T) {
	for _, field := range []string{"from", "to", "subject", "body"} {
		t.Run(field, func(t *testing.T) {
			sender := new(MockSender)
			form := createValidForm()
			delete(form, field)

			_, err := createHandler(t, sender).Handle(context.Background(), form)
			require.Error(t, err)

			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
			assert.Contains(t, stdErr.Metadata["missingFields"], field)
			sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_Handle_HeaderInjectionRejected(t *testing.T) {
	sender := new(MockSender)
	form := createValidForm()
	form["subject"] = "Hi\r\nBcc: victim@example.com"

	_, err := createHandler(t, sender).Handle(context.Background(), form)
	require.Error(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestHandler_Handle_InvalidAddress(t *testing.T) {
	sender := new(MockSender)
	form := createValidForm()
	form["to"] = "not-an-address"

	_, err := createHandler(t, sender).Handle(context.Background(), form)
	require.Error(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestHandler_Handle_DisplayNameAddressRejected(t *testing.T) {
	for _, field := range []string{"from", "to"} {
		t.Run(field, func(t *testing.T) {
			sender := new(MockSender)
			form := createValidForm()
			form[field] = "Bob <bob@example.com>"

			_, err := createHandler(t, sender).Handle(context.Background(), form)
			require.Error(t, err)

			var stdErr *errors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
			sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_Handle_SenderErrorVerbatim(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("535 5.7.8 Username and Password not accepted")).Once()

	_, err := createHandler(t, sender).Handle(context.Background(), createValidForm())
	require.Error(t, err)
	assert.Equal(t, "Email Error: 535 5.7.8 Username and Password not accepted", errors.ToOutcomeMessage(err))
}

func TestHandler_Handle_RepeatedSubmissionSendsTwice(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return("", nil).Twice()

	h := createHandler(t, sender)
	for i := 0; i < 2; i++ {
		_, err := h.Handle(context.Background(), createValidForm())
		require.NoError(t, err)
	}
	sender.AssertNumberOfCalls(t, "Send", 2)
}

func TestHandler_Handle_SESProvider(t *testing.T) {
	sesClient := new(MockSES)
	sesClient.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return aws.ToString(in.Source) == "noreply@example.com" &&
			in.Destination.ToAddresses[0] == "bob@example.com" &&
			in.ReplyToAddresses[0] == "alice@example.com" &&
			aws.ToString(in.Message.Subject.Data) == "Hello"
	})).Return(&ses.SendEmailOutput{MessageId: aws.String("0100-abc")}, nil).Once()

	h, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{Enabled: true, Timeout: time.Second, Provider: ProviderSES, SESFromEmail: "noreply@example.com"},
		Logger:       logger.NewTestLogger(t),
		SES:          sesClient,
	})
	require.NoError(t, err)

	outcome, err := h.Handle(context.Background(), createValidForm())
	require.NoError(t, err)
	assert.Equal(t, "Email sent!", outcome.Message)
	sesClient.AssertExpectations(t)
}

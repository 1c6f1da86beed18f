package emailsend

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ses"

	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
)

type Input struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Output struct {
	Provider  string `json:"provider"`
	MessageID string `json:"messageId,omitempty"`
}

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg *Input) (messageID string, err error)
	Name() string
}

// SESAPI is the slice of the SES client the SES sender needs.
type SESAPI interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type ServiceDependencies struct {
	Logger logger.Logger
	Sender Sender
}

type SenderDependencies struct {
	Secrets secrets.Provider
	SES     SESAPI
}

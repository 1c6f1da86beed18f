// internal/common/aws/ses.go
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

// SESClient is the email-send alternative to an SMTP relay.
type SESClient struct {
	client *ses.Client
}

func NewSESClient(cfg awssdk.Config) *SESClient {
	return &SESClient{client: ses.NewFromConfig(cfg)}
}

func (s *SESClient) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	return s.client.SendEmail(ctx, input)
}

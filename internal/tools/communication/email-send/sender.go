package emailsend

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/secrets"
)

// NewSender builds the sender for the configured provider.
func NewSender(cfg *Config, deps SenderDependencies) (Sender, error) {
	switch cfg.Provider {
	case ProviderSES:
		if deps.SES == nil {
			return nil, fmt.Errorf("ses client is required for the ses provider")
		}
		return &sesSender{client: deps.SES, fromOverride: cfg.SESFromEmail}, nil
	default:
		if deps.Secrets == nil {
			return nil, fmt.Errorf("secrets provider is required for the smtp provider")
		}
		return &smtpSender{config: cfg, secrets: deps.Secrets}, nil
	}
}

// buildMessage renders a plain-text RFC 5322 message.
func buildMessage(msg *Input) []byte {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("From: %s\r\n", msg.From))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	builder.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z)))
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Body, "\r\n", "\n"), "\n", "\r\n"))

	return []byte(builder.String())
}

// ==========================
// SMTP
// ==========================

type smtpSender struct {
	config  *Config
	secrets secrets.Provider
}

func (s *smtpSender) Name() string { return ProviderSMTP }

// Send opens one session: connect, STARTTLS, login, one message, quit.
func (s *smtpSender) Send(ctx context.Context, msg *Input) (string, error) {
	password, err := s.secrets.Get(ctx, s.config.PasswordSecret)
	if err != nil {
		return "", errors.NewSecretUnavailableError(s.config.PasswordSecret, err)
	}

	username := s.config.SMTPUsername
	if username == "" {
		username = msg.From
	}

	addr := net.JoinHostPort(s.config.SMTPHost, strconv.Itoa(s.config.SMTPPort))

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.config.SMTPHost)
	if err != nil {
		_ = conn.Close()
		return "", fmt.Errorf("failed to start SMTP session: %w", err)
	}
	defer client.Close()

	if s.config.UseTLS {
		if err = client.StartTLS(&tls.Config{ServerName: s.config.SMTPHost}); err != nil {
			return "", fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if err = client.Auth(smtp.PlainAuth("", username, password, s.config.SMTPHost)); err != nil {
		return "", fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err = client.Mail(msg.From); err != nil {
		return "", fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(msg.To); err != nil {
		return "", fmt.Errorf("failed to set recipient %s: %w", msg.To, err)
	}

	w, err := client.Data()
	if err != nil {
		return "", fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err = w.Write(buildMessage(msg)); err != nil {
		return "", fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return "", fmt.Errorf("failed to close data writer: %w", err)
	}

	return "", client.Quit()
}

// ==========================
// SES
// ==========================

type sesSender struct {
	client       SESAPI
	fromOverride string
}

func (s *sesSender) Name() string { return ProviderSES }

func (s *sesSender) Send(ctx context.Context, msg *Input) (string, error) {
	from := msg.From
	if s.fromOverride != "" {
		from = s.fromOverride
	}

	out, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:           aws.String(from),
		ReplyToAddresses: []string{msg.From},
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String("UTF-8")},
			},
		},
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

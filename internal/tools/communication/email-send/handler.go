package emailsend

import (
	"context"
	"fmt"
	"time"

	"tool-dashboard/internal/common/config"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
	"tool-dashboard/internal/common/toolkit"
)

const ToolName = "email-send"

type Handler struct {
	config  *Config
	logger  logger.Logger
	service *Service
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Logger       logger.Logger
	Secrets      secrets.Provider
	SES          SESAPI
	// Sender replaces the provider built from config.
	Sender Sender
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	toolConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)

	if err := toolConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", ToolName, err)
	}

	var loggerInstance logger.Logger
	if opts.Logger != nil {
		loggerInstance = opts.Logger
	} else {
		loggerInstance = logger.NewStructured("info", "json")
	}

	sender := opts.Sender
	if sender == nil {
		var err error
		sender, err = NewSender(toolConfig, SenderDependencies{Secrets: opts.Secrets, SES: opts.SES})
		if err != nil {
			return nil, fmt.Errorf("failed to create sender for %s: %w", ToolName, err)
		}
	}

	handler := &Handler{
		config: toolConfig,
		logger: loggerInstance,
	}

	handler.service = NewService(ServiceDependencies{
		Logger: loggerInstance,
		Sender: sender,
	}, handler.config)

	return handler, nil
}

func (h *Handler) Descriptor() toolkit.Descriptor {
	return toolkit.Descriptor{
		Name:        ToolName,
		Label:       "Send Email",
		Category:    "Communication",
		Description: "Send a plain text email through the configured relay.",
		SubmitLabel: "Send",
		Fields: []toolkit.Field{
			{Name: "from", Label: "Your Email", Kind: toolkit.FieldEmail, Required: true},
			{Name: "to", Label: "Recipient Email", Kind: toolkit.FieldEmail, Required: true},
			{Name: "subject", Label: "Subject", Kind: toolkit.FieldText, Required: true},
			{Name: "body", Label: "Message", Kind: toolkit.FieldTextarea, Required: true},
		},
		Secrets: h.config.secretNames(),
		Schema:  GetInputSchema(),
	}
}

func (h *Handler) Handle(ctx context.Context, form toolkit.Form) (*toolkit.Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(form)
	if err != nil {
		return nil, err
	}

	output, err := h.service.Execute(ctx, input)
	if err != nil {
		return nil, err
	}

	h.logger.Info("Email sent", map[string]interface{}{
		"tool":      ToolName,
		"provider":  output.Provider,
		"messageId": output.MessageID,
	})

	return toolkit.Success(ToolName, "Email sent!"), nil
}

func (h *Handler) parseInput(form toolkit.Form) (*Input, error) {
	if err := form.Validate(GetInputSchema()); err != nil {
		return nil, err
	}
	return &Input{
		From:    form.Get("from"),
		To:      form.Get("to"),
		Subject: form.Get("subject"),
		Body:    form.Get("body"),
	}, nil
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func (h *Handler) GetConfig() *Config {
	return h.config
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()

	if appConfig != nil {
		if toolCfg, exists := appConfig.Tools[ToolName]; exists {
			cfg.Enabled = toolCfg.Enabled
			if toolCfg.Timeout > 0 {
				cfg.Timeout = time.Duration(toolCfg.Timeout) * time.Millisecond
			}
		}

		smtpCfg := appConfig.Integrations.SMTP
		if smtpCfg.Provider != "" {
			cfg.Provider = smtpCfg.Provider
		}
		if smtpCfg.Host != "" {
			cfg.SMTPHost = smtpCfg.Host
			cfg.UseTLS = smtpCfg.UseTLS
		}
		if smtpCfg.Port > 0 {
			cfg.SMTPPort = smtpCfg.Port
		}
		if smtpCfg.Username != "" {
			cfg.SMTPUsername = smtpCfg.Username
		}

		if appConfig.Integrations.AWS.SES.FromEmail != "" {
			cfg.SESFromEmail = appConfig.Integrations.AWS.SES.FromEmail
		}
	}

	return cfg
}

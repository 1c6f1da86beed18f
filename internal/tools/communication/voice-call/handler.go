package voicecall

import (
	"context"
	"fmt"
	"time"

	"tool-dashboard/internal/common/config"
	"tool-dashboard/internal/common/http"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
	"tool-dashboard/internal/common/toolkit"
)

const ToolName = "voice-call"

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
	HTTPClient   *http.Client
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	toolConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)

	if err := toolConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", ToolName, err)
	}
	if opts.Secrets == nil {
		return nil, fmt.Errorf("secrets provider is required for %s", ToolName)
	}

	var loggerInstance logger.Logger
	if opts.Logger != nil {
		loggerInstance = opts.Logger
	} else {
		loggerInstance = logger.NewStructured("info", "json")
	}

	handler := &Handler{
		config: toolConfig,
		logger: loggerInstance,
	}

	handler.service = NewService(ServiceDependencies{
		Logger:     loggerInstance,
		Secrets:    opts.Secrets,
		HTTPClient: opts.HTTPClient,
	}, handler.config)

	return handler, nil
}

func (h *Handler) Descriptor() toolkit.Descriptor {
	return toolkit.Descriptor{
		Name:        ToolName,
		Label:       "Make a Call",
		Category:    "Communication",
		Description: "Ring a phone number and play a short voice message.",
		SubmitLabel: "Call",
		Fields: []toolkit.Field{
			{Name: "from", Label: "Your Twilio Number", Kind: toolkit.FieldTel, Required: true, Placeholder: "+15005550006"},
			{Name: "to", Label: "Recipient Number", Kind: toolkit.FieldTel, Required: true, Placeholder: "+14155550100"},
		},
		Secrets: []string{h.config.TokenSecret},
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

	h.logger.Info("Call initiated", map[string]interface{}{
		"tool":   ToolName,
		"sid":    output.SID,
		"status": output.Status,
	})

	return toolkit.Success(ToolName, fmt.Sprintf("Call initiated! SID: %s", output.SID)), nil
}

func (h *Handler) parseInput(form toolkit.Form) (*Input, error) {
	if err := form.Validate(GetInputSchema()); err != nil {
		return nil, err
	}
	return &Input{
		From: form.Get("from"),
		To:   form.Get("to"),
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

		twilio := appConfig.Integrations.Twilio
		if twilio.BaseURL != "" {
			cfg.BaseURL = twilio.BaseURL
		}
		if twilio.VoiceURL != "" {
			cfg.VoiceURL = twilio.VoiceURL
		}
		cfg.AccountSID = twilio.AccountSID
	}

	return cfg
}

package smssend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tool-dashboard/internal/common/config"
	"tool-dashboard/internal/common/http"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
	"tool-dashboard/internal/common/toolkit"
)

const ToolName = "sms-send"

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
	SNS          SNSAPI
	// Gateway replaces the provider built from config.
	Gateway Gateway
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

	gateway := opts.Gateway
	if gateway == nil {
		var err error
		gateway, err = NewGateway(toolConfig, GatewayDependencies{
			Secrets:    opts.Secrets,
			HTTPClient: opts.HTTPClient,
			SNS:        opts.SNS,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gateway for %s: %w", ToolName, err)
		}
	}

	handler := &Handler{
		config: toolConfig,
		logger: loggerInstance,
	}

	handler.service = NewService(ServiceDependencies{
		Logger:  loggerInstance,
		Gateway: gateway,
	}, handler.config)

	return handler, nil
}

func (h *Handler) Descriptor() toolkit.Descriptor {
	return toolkit.Descriptor{
		Name:        ToolName,
		Label:       "Send SMS",
		Category:    "Communication",
		Description: "Text one or more phone numbers.",
		SubmitLabel: "Send SMS",
		Fields: []toolkit.Field{
			{Name: "numbers", Label: "Recipient Number(s)", Kind: toolkit.FieldText, Required: true, Help: "Separate several numbers with commas"},
			{Name: "message", Label: "Message", Kind: toolkit.FieldTextarea, Required: true},
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

	if !output.Accepted {
		return toolkit.Warning(ToolName, "SMS gateway response").WithDetail(output.Raw), nil
	}
	return toolkit.Success(ToolName, "SMS gateway response").WithDetail(output.Raw), nil
}

func (h *Handler) parseInput(form toolkit.Form) (*Input, error) {
	if err := form.Validate(GetInputSchema()); err != nil {
		return nil, err
	}
	return &Input{
		Numbers: splitNumbers(form.Get("numbers")),
		Message: form.Get("message"),
	}, nil
}

func splitNumbers(raw string) []string {
	parts := strings.Split(raw, ",")
	numbers := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := strings.TrimSpace(p); n != "" {
			numbers = append(numbers, n)
		}
	}
	return numbers
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

		if appConfig.Integrations.SMS.Provider != "" {
			cfg.Provider = appConfig.Integrations.SMS.Provider
		}
		if appConfig.Integrations.Textlocal.BaseURL != "" {
			cfg.BaseURL = appConfig.Integrations.Textlocal.BaseURL
		}
		if appConfig.Integrations.Textlocal.Sender != "" {
			cfg.Sender = appConfig.Integrations.Textlocal.Sender
		}
		if appConfig.Integrations.AWS.SNS.DefaultSMSSenderID != "" {
			cfg.SNSSenderID = appConfig.Integrations.AWS.SNS.DefaultSMSSenderID
		}
	}

	return cfg
}

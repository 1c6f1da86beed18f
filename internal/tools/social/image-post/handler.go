package imagepost

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

const ToolName = "image-post"

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
		Label:       "Post to Instagram",
		Category:    "Social",
		Description: "Publish an image from a public URL with a caption.",
		SubmitLabel: "Post",
		Fields: []toolkit.Field{
			{Name: "account_id", Label: "Instagram Business Account ID", Kind: toolkit.FieldText, Required: true},
			{Name: "image_url", Label: "Image URL", Kind: toolkit.FieldURL, Required: true, Placeholder: "https://"},
			{Name: "caption", Label: "Caption", Kind: toolkit.FieldTextarea, Required: true},
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

	h.logger.Info("Image published", map[string]interface{}{
		"tool":       ToolName,
		"creationId": output.CreationID,
		"mediaId":    output.MediaID,
	})

	return toolkit.Success(ToolName, "Posted!"), nil
}

func (h *Handler) parseInput(form toolkit.Form) (*Input, error) {
	if err := form.Validate(GetInputSchema()); err != nil {
		return nil, err
	}
	return &Input{
		AccountID: form.Get("account_id"),
		ImageURL:  form.Get("image_url"),
		Caption:   form.Get("caption"),
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

		graph := appConfig.Integrations.Graph
		if graph.BaseURL != "" {
			cfg.BaseURL = graph.BaseURL
		}
		if graph.APIVersion != "" {
			cfg.APIVersion = graph.APIVersion
		}
	}

	return cfg
}

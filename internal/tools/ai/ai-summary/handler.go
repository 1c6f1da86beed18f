package aisummary

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

const ToolName = "ai-summary"

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
	options := make([]toolkit.Option, len(Categories))
	for i, c := range Categories {
		options[i] = toolkit.Option{Value: c, Label: c}
	}

	return toolkit.Descriptor{
		Name:        ToolName,
		Label:       "AI-Powered Recommender Bot",
		Category:    "AI",
		Description: "Summary, studio and ratings for an anime, manga, movie or web series.",
		SubmitLabel: "Get Summary and Ratings",
		Fields: []toolkit.Field{
			{Name: "category", Label: "Select Category", Kind: toolkit.FieldSelect, Required: true, Options: options},
			{Name: "title", Label: "Enter Title", Kind: toolkit.FieldText, Required: true, Placeholder: "Cowboy Bebop"},
		},
		Secrets: []string{h.config.APIKeySecret},
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

	startTime := time.Now()
	output, err := h.service.Execute(ctx, input)
	if err != nil {
		return nil, err
	}

	h.logger.Info("AI summary generated", map[string]interface{}{
		"tool":     ToolName,
		"category": input.Category,
		"chars":    len(output.Text),
		"duration": time.Since(startTime).String(),
	})

	return toolkit.Success(ToolName, output.Text), nil
}

func (h *Handler) parseInput(form toolkit.Form) (*Input, error) {
	if err := form.Validate(GetInputSchema()); err != nil {
		return nil, err
	}
	return &Input{
		Category: form.Get("category"),
		Title:    form.Get("title"),
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

		if appConfig.Integrations.GenAI.BaseURL != "" {
			cfg.BaseURL = appConfig.Integrations.GenAI.BaseURL
		}
		if appConfig.Integrations.GenAI.Model != "" {
			cfg.Model = appConfig.Integrations.GenAI.Model
		}
	}

	return cfg
}

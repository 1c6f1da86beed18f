package containercontrol

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tool-dashboard/internal/common/config"
	"tool-dashboard/internal/common/container"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/toolkit"
)

const ToolName = "container-control"

type Handler struct {
	config  *Config
	logger  logger.Logger
	service *Service
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Logger       logger.Logger
	Runner       container.Runner
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

	handler := &Handler{
		config: toolConfig,
		logger: loggerInstance,
	}

	handler.service = NewService(ServiceDependencies{
		Logger: loggerInstance,
		Runner: opts.Runner,
	}, handler.config)

	return handler, nil
}

func (h *Handler) Descriptor() toolkit.Descriptor {
	options := make([]toolkit.Option, len(operationLabels))
	for i, o := range operationLabels {
		options[i] = toolkit.Option{Value: string(o.Op), Label: o.Label}
	}

	return toolkit.Descriptor{
		Name:        ToolName,
		Label:       "Docker Management",
		Category:    "Infrastructure",
		Description: "Launch, start, stop or remove a container on this host, or list its images.",
		SubmitLabel: "Run",
		Fields: []toolkit.Field{
			{Name: "operation", Label: "Choose operation", Kind: toolkit.FieldSelect, Required: true, Options: options},
			{Name: "name", Label: "Container Name", Kind: toolkit.FieldText, Help: "Required for every operation except listing images"},
			{Name: "image", Label: "Image Name", Kind: toolkit.FieldText, Placeholder: "nginx", Help: "Required to launch"},
		},
		Schema: GetInputSchema(),
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

	if input.Operation == OpListImages {
		return toolkit.Success(ToolName, input.Operation.Label()).WithDetail(output.Output), nil
	}

	detail := output.Output
	if output.ExitError != "" {
		detail = strings.TrimSpace(strings.Join([]string{detail, output.ExitError}, "\n"))
	}

	return toolkit.Success(ToolName, fmt.Sprintf("%s executed.", input.Operation.Label())).WithDetail(detail), nil
}

func (h *Handler) parseInput(form toolkit.Form) (*Input, error) {
	if err := form.Validate(GetInputSchema()); err != nil {
		return nil, err
	}
	return &Input{
		Operation: Operation(form.Get("operation")),
		Name:      form.Get("name"),
		Image:     form.Get("image"),
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

		if appConfig.Integrations.Container.Binary != "" {
			cfg.Binary = appConfig.Integrations.Container.Binary
		}
	}

	return cfg
}

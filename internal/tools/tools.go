// Package tools assembles every dashboard tool from application config.
package tools

import (
	"fmt"

	"tool-dashboard/internal/common/config"
	"tool-dashboard/internal/common/container"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
	"tool-dashboard/internal/common/toolkit"
	aisummary "tool-dashboard/internal/tools/ai/ai-summary"
	emailsend "tool-dashboard/internal/tools/communication/email-send"
	smssend "tool-dashboard/internal/tools/communication/sms-send"
	voicecall "tool-dashboard/internal/tools/communication/voice-call"
	containercontrol "tool-dashboard/internal/tools/infrastructure/container-control"
	imagepost "tool-dashboard/internal/tools/social/image-post"
	pagepost "tool-dashboard/internal/tools/social/page-post"
	geocodelookup "tool-dashboard/internal/tools/utility/geocode-lookup"
	markuppreview "tool-dashboard/internal/tools/utility/markup-preview"
)

// Options carries the shared collaborators. SES and SNS are only needed when
// the matching provider is selected in config.
type Options struct {
	AppConfig *config.Config
	Logger    logger.Logger
	Secrets   secrets.Provider
	Runner    container.Runner
	SES       emailsend.SESAPI
	SNS       smssend.SNSAPI
}

// Names lists every tool in menu order.
var Names = []string{
	aisummary.ToolName,
	containercontrol.ToolName,
	emailsend.ToolName,
	voicecall.ToolName,
	pagepost.ToolName,
	imagepost.ToolName,
	markuppreview.ToolName,
	geocodelookup.ToolName,
	smssend.ToolName,
}

type builder func(opts Options) (toolkit.Tool, error)

var builders = map[string]builder{
	aisummary.ToolName: func(o Options) (toolkit.Tool, error) {
		return aisummary.NewHandler(aisummary.HandlerOptions{AppConfig: o.AppConfig, Logger: o.Logger, Secrets: o.Secrets})
	},
	containercontrol.ToolName: func(o Options) (toolkit.Tool, error) {
		return containercontrol.NewHandler(containercontrol.HandlerOptions{AppConfig: o.AppConfig, Logger: o.Logger, Runner: o.Runner})
	},
	emailsend.ToolName: func(o Options) (toolkit.Tool, error) {
		return emailsend.NewHandler(emailsend.HandlerOptions{AppConfig: o.AppConfig, Logger: o.Logger, Secrets: o.Secrets, SES: o.SES})
	},
	voicecall.ToolName: func(o Options) (toolkit.Tool, error) {
		return voicecall.NewHandler(voicecall.HandlerOptions{AppConfig: o.AppConfig, Logger: o.Logger, Secrets: o.Secrets})
	},
	pagepost.ToolName: func(o Options) (toolkit.Tool, error) {
		return pagepost.NewHandler(pagepost.HandlerOptions{AppConfig: o.AppConfig, Logger: o.Logger, Secrets: o.Secrets})
	},
	imagepost.ToolName: func(o Options) (toolkit.Tool, error) {
		return imagepost.NewHandler(imagepost.HandlerOptions{AppConfig: o.AppConfig, Logger: o.Logger, Secrets: o.Secrets})
	},
	markuppreview.ToolName: func(o Options) (toolkit.Tool, error) {
		return markuppreview.NewHandler(markuppreview.HandlerOptions{AppConfig: o.AppConfig, Logger: o.Logger})
	},
	geocodelookup.ToolName: func(o Options) (toolkit.Tool, error) {
		return geocodelookup.NewHandler(geocodelookup.HandlerOptions{AppConfig: o.AppConfig, Logger: o.Logger})
	},
	smssend.ToolName: func(o Options) (toolkit.Tool, error) {
		return smssend.NewHandler(smssend.HandlerOptions{AppConfig: o.AppConfig, Logger: o.Logger, Secrets: o.Secrets, SNS: o.SNS})
	},
}

// Build constructs every tool in menu order. A tool that cannot be built is
// left out and its error returned alongside the others.
func Build(opts Options) ([]toolkit.Tool, map[string]error) {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}

	built := make([]toolkit.Tool, 0, len(Names))
	failed := make(map[string]error)

	for _, name := range Names {
		tool, err := builders[name](opts)
		if err != nil {
			failed[name] = err
			continue
		}
		built = append(built, tool)
	}

	return built, failed
}

// BuildOne constructs a single tool by name.
func BuildOne(name string, opts Options) (toolkit.Tool, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	return b(opts)
}

package markuppreview

import (
	"context"

	"tool-dashboard/internal/common/logger"
)

type Service struct {
	config *Config
	logger logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		logger: deps.Logger,
	}
}

// Execute passes the markup through untouched. Isolation comes from the
// sandboxed frame it is rendered into, not from sanitizing.
func (s *Service) Execute(_ context.Context, input *Input) (*Output, error) {
	return &Output{
		Preview: input.Markup,
		Bytes:   len(input.Markup),
	}, nil
}

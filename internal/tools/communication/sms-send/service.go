package smssend

import (
	"context"

	"tool-dashboard/internal/common/logger"
)

type Service struct {
	config  *Config
	logger  logger.Logger
	gateway Gateway
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:  config,
		logger:  deps.Logger,
		gateway: deps.Gateway,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	s.logger.Info("Sending SMS", map[string]interface{}{
		"provider":   s.gateway.Name(),
		"recipients": len(input.Numbers),
	})

	output, err := s.gateway.Send(ctx, input)
	if err != nil {
		return nil, err
	}

	if !output.Accepted {
		s.logger.Warn("SMS gateway refused the message", map[string]interface{}{
			"provider": output.Provider,
		})
	}
	return output, nil
}

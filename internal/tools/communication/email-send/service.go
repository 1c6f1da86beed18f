package emailsend

import (
	"context"

	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/logger"
)

type Service struct {
	config *Config
	logger logger.Logger
	sender Sender
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		logger: deps.Logger,
		sender: deps.Sender,
	}
}

// Execute hands one message to the sender. Every attempt sends; nothing is deduplicated.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	s.logger.Info("Sending email", map[string]interface{}{
		"provider": s.sender.Name(),
		"to":       input.To,
	})

	messageID, err := s.sender.Send(ctx, input)
	if err != nil {
		if _, ok := errors.AsStandardError(err); ok {
			return nil, err
		}
		return nil, errors.NewSMTPError(err)
	}

	return &Output{
		Provider:  s.sender.Name(),
		MessageID: messageID,
	}, nil
}

package voicecall

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/http"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
)

const serviceName = "Call"

type Service struct {
	config  *Config
	logger  logger.Logger
	secrets secrets.Provider
	client  *http.Client
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	client := deps.HTTPClient
	if client == nil {
		client = http.NewClient(config.Timeout)
	}
	return &Service{
		config:  config,
		logger:  deps.Logger,
		secrets: deps.Secrets,
		client:  client,
	}
}

// Execute places one outbound call that plays the configured voice document.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if s.config.AccountSID == "" {
		return nil, errors.NewConfigurationError("telephony account SID is not set")
	}

	token, err := s.secrets.Get(ctx, s.config.TokenSecret)
	if err != nil {
		return nil, errors.NewSecretUnavailableError(s.config.TokenSecret, err)
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Calls.json",
		strings.TrimRight(s.config.BaseURL, "/"), url.PathEscape(s.config.AccountSID))

	form := url.Values{}
	form.Set("To", input.To)
	form.Set("From", input.From)
	form.Set("Url", s.config.VoiceURL)

	s.logger.Info("Creating call", map[string]interface{}{
		"to": input.To,
	})

	resp, err := s.client.PostForm(ctx, endpoint, form, http.WithBasicAuth(s.config.AccountSID, token))
	if err != nil {
		return nil, errors.FromCallError(serviceName, err)
	}

	if !resp.OK() {
		var apiErr apiErrorResponse
		message := resp.Text()
		if resp.DecodeJSON(&apiErr) == nil && apiErr.Message != "" {
			message = apiErr.Message
		}
		return nil, errors.NewUpstreamRejectedError(serviceName, resp.StatusCode, message)
	}

	var call callResponse
	if err := resp.DecodeJSON(&call); err != nil {
		return nil, errors.NewExternalServiceError(serviceName, err)
	}
	if call.SID == "" {
		return nil, errors.NewExternalServiceError(serviceName, fmt.Errorf("response carried no call SID: %s", resp.Text()))
	}

	return &Output{SID: call.SID, Status: call.Status}, nil
}

package pagepost

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"net/url"
	"strings"

	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/http"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
)

const serviceName = "Facebook"

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

// Execute publishes one feed post. Only a 200 counts as posted; anything else
// is reported with the raw response body.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	token, err := s.secrets.Get(ctx, s.config.TokenSecret)
	if err != nil {
		return nil, errors.NewSecretUnavailableError(s.config.TokenSecret, err)
	}

	endpoint := fmt.Sprintf("%s/%s/feed", strings.TrimRight(s.config.BaseURL, "/"), url.PathEscape(input.PageID))

	form := url.Values{}
	form.Set("message", input.Message)
	form.Set("access_token", token)

	s.logger.Info("Publishing page post", map[string]interface{}{
		"pageId": input.PageID,
	})

	resp, err := s.client.PostForm(ctx, endpoint, form)
	if err != nil {
		return nil, errors.FromCallError(serviceName, err)
	}

	if resp.StatusCode != stdhttp.StatusOK {
		return nil, errors.NewUpstreamRejectedError(serviceName, resp.StatusCode, resp.Text())
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := resp.DecodeJSON(&created); err != nil {
		s.logger.Debug("Post response carried no readable id", map[string]interface{}{
			"tool":  ToolName,
			"error": err.Error(),
		})
	}

	return &Output{PostID: created.ID, Raw: resp.Text()}, nil
}

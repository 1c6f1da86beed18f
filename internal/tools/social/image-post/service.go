package imagepost

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

const serviceName = "Instagram"

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

// Execute creates a media container and publishes it. Publish is attempted
// only when the container response carries an id.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	token, err := s.secrets.Get(ctx, s.config.TokenSecret)
	if err != nil {
		return nil, errors.NewSecretUnavailableError(s.config.TokenSecret, err)
	}

	base := fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.config.BaseURL, "/"),
		url.PathEscape(s.config.APIVersion), url.PathEscape(input.AccountID))

	creationID, err := s.createContainer(ctx, base, token, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Media container created", map[string]interface{}{
		"accountId":  input.AccountID,
		"creationId": creationID,
	})

	mediaID, err := s.publish(ctx, base, token, creationID)
	if err != nil {
		return nil, err
	}

	return &Output{CreationID: creationID, MediaID: mediaID}, nil
}

func (s *Service) createContainer(ctx context.Context, base, token string, input *Input) (string, error) {
	form := url.Values{}
	form.Set("image_url", input.ImageURL)
	form.Set("caption", input.Caption)
	form.Set("access_token", token)

	resp, err := s.client.PostForm(ctx, base+"/media", form)
	if err != nil {
		return "", errors.FromCallError(serviceName, err)
	}

	var created map[string]interface{}
	if err := resp.DecodeJSON(&created); err != nil {
		return "", errors.NewMediaContainerError(resp.Text())
	}
	id, ok := created["id"].(string)
	if !ok || id == "" {
		return "", errors.NewMediaContainerError(resp.Text())
	}
	return id, nil
}

func (s *Service) publish(ctx context.Context, base, token, creationID string) (string, error) {
	form := url.Values{}
	form.Set("creation_id", creationID)
	form.Set("access_token", token)

	resp, err := s.client.PostForm(ctx, base+"/media_publish", form)
	if err != nil {
		return "", errors.FromCallError(serviceName, err)
	}

	if resp.StatusCode != stdhttp.StatusOK {
		return "", errors.NewUpstreamRejectedError(serviceName, resp.StatusCode, resp.Text())
	}

	var published struct {
		ID string `json:"id"`
	}
	if err := resp.DecodeJSON(&published); err != nil {
		s.logger.Debug("Publish response carried no readable id", map[string]interface{}{
			"tool":  ToolName,
			"error": err.Error(),
		})
	}
	return published.ID, nil
}

package geocodelookup

import (
	"context"
	"net/url"
	"strings"

	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/http"
	"tool-dashboard/internal/common/logger"
)

const serviceName = "Geocoding"

type Service struct {
	config *Config
	logger logger.Logger
	client *http.Client
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	client := deps.HTTPClient
	if client == nil {
		client = http.NewClient(config.Timeout, http.WithUserAgent(config.UserAgent))
	}
	return &Service{
		config: config,
		logger: deps.Logger,
		client: client,
	}
}

// Execute runs one search and keeps the first hit.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("q", input.Place)

	endpoint := strings.TrimRight(s.config.BaseURL, "/") + "/search?" + query.Encode()

	resp, err := s.client.Get(ctx, endpoint, http.WithHeader("User-Agent", s.config.UserAgent))
	if err != nil {
		return nil, errors.FromCallError(serviceName, err)
	}
	if !resp.OK() {
		return nil, errors.NewUpstreamRejectedError(serviceName, resp.StatusCode, resp.Text())
	}

	var results []searchResult
	if err := resp.DecodeJSON(&results); err != nil {
		return nil, errors.NewExternalServiceError(serviceName, err)
	}

	s.logger.Debug("Geocoding search completed", map[string]interface{}{
		"results": len(results),
	})

	if len(results) == 0 {
		return &Output{Found: false}, nil
	}

	first := results[0]
	return &Output{
		Found:       true,
		Latitude:    first.Lat,
		Longitude:   first.Lon,
		DisplayName: first.DisplayName,
	}, nil
}

package aisummary

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

const serviceName = "Gemini"

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

// BuildPrompt renders the reviewer prompt for one title.
func BuildPrompt(category, title string) string {
	return fmt.Sprintf(
		"You are an expert in %s. Give a summary, studio, and rate the %s titled '%s' on story, animation, "+
			"characters, soundtrack, and say whether you recommend it or not.",
		category, strings.ToLower(category), title,
	)
}

// Execute issues exactly one generateContent call.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	apiKey, err := s.secrets.Get(ctx, s.config.APIKeySecret)
	if err != nil {
		return nil, errors.NewSecretUnavailableError(s.config.APIKeySecret, err)
	}

	s.logger.Info("Requesting AI summary", map[string]interface{}{
		"category": input.Category,
		"model":    s.config.Model,
	})

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(s.config.BaseURL, "/"), url.PathEscape(s.config.Model))

	request := generateContentRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: BuildPrompt(input.Category, input.Title)}},
		}},
	}

	resp, err := s.client.PostJSON(ctx, endpoint, request, http.WithHeader("x-goog-api-key", apiKey))
	if err != nil {
		return nil, errors.FromCallError(serviceName, err)
	}

	if !resp.OK() {
		return nil, errors.NewUpstreamRejectedError(serviceName, resp.StatusCode, apiErrorMessage(resp))
	}

	var decoded generateContentResponse
	if err := resp.DecodeJSON(&decoded); err != nil {
		return nil, errors.NewExternalServiceError(serviceName, err)
	}

	if len(decoded.Candidates) == 0 {
		reason := "no candidates returned"
		if decoded.PromptFeedback != nil && decoded.PromptFeedback.BlockReason != "" {
			reason = fmt.Sprintf("prompt blocked: %s", decoded.PromptFeedback.BlockReason)
		}
		return nil, errors.NewExternalServiceError(serviceName, fmt.Errorf("%s", reason))
	}

	candidate := decoded.Candidates[0]
	var text strings.Builder
	for _, p := range candidate.Content.Parts {
		text.WriteString(p.Text)
	}

	if text.Len() == 0 {
		return nil, errors.NewExternalServiceError(serviceName,
			fmt.Errorf("empty response (finish reason %s)", candidate.FinishReason))
	}

	return &Output{
		Text:         text.String(),
		Model:        s.config.Model,
		FinishReason: candidate.FinishReason,
	}, nil
}

// apiErrorMessage prefers the API's own error message and falls back to the raw body.
func apiErrorMessage(resp *http.Response) string {
	var apiErr apiErrorResponse
	if err := resp.DecodeJSON(&apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	return resp.Text()
}

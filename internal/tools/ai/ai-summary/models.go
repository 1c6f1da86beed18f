package aisummary

import (
	"tool-dashboard/internal/common/http"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
)

// Categories are the media types the prompt is written for.
var Categories = []string{"Anime", "Manga", "Movie", "Web Series"}

type Input struct {
	Category string `json:"category"`
	Title    string `json:"title"`
}

type Output struct {
	Text         string `json:"text"`
	Model        string `json:"model"`
	FinishReason string `json:"finishReason,omitempty"`
}

type ServiceDependencies struct {
	Logger     logger.Logger
	Secrets    secrets.Provider
	HTTPClient *http.Client
}

// generateContentRequest and generateContentResponse mirror the
// generateContent REST payloads.
type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

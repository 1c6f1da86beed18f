package pagepost

import (
	"tool-dashboard/internal/common/http"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
)

type Input struct {
	PageID  string `json:"pageId"`
	Message string `json:"message"`
}

type Output struct {
	PostID string `json:"postId,omitempty"`
	Raw    string `json:"raw"`
}

type ServiceDependencies struct {
	Logger     logger.Logger
	Secrets    secrets.Provider
	HTTPClient *http.Client
}

package imagepost

import (
	"tool-dashboard/internal/common/http"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
)

type Input struct {
	AccountID string `json:"accountId"`
	ImageURL  string `json:"imageUrl"`
	Caption   string `json:"caption"`
}

type Output struct {
	CreationID string `json:"creationId"`
	MediaID    string `json:"mediaId,omitempty"`
}

type ServiceDependencies struct {
	Logger     logger.Logger
	Secrets    secrets.Provider
	HTTPClient *http.Client
}

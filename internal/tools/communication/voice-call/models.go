package voicecall

import (
	"tool-dashboard/internal/common/http"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
)

type Input struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Output struct {
	SID    string `json:"sid"`
	Status string `json:"status,omitempty"`
}

type ServiceDependencies struct {
	Logger     logger.Logger
	Secrets    secrets.Provider
	HTTPClient *http.Client
}

type callResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type apiErrorResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

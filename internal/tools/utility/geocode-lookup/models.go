package geocodelookup

import (
	"tool-dashboard/internal/common/http"
	"tool-dashboard/internal/common/logger"
)

type Input struct {
	Place string `json:"place"`
}

type Output struct {
	Found       bool   `json:"found"`
	Latitude    string `json:"latitude,omitempty"`
	Longitude   string `json:"longitude,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

type ServiceDependencies struct {
	Logger     logger.Logger
	HTTPClient *http.Client
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

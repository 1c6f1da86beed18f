package markuppreview

import "tool-dashboard/internal/common/logger"

type Input struct {
	Markup string `json:"markup"`
}

type Output struct {
	Preview string `json:"preview"`
	Bytes   int    `json:"bytes"`
}

type ServiceDependencies struct {
	Logger logger.Logger
}

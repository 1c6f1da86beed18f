package smssend

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sns"

	"tool-dashboard/internal/common/http"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
)

type Input struct {
	Numbers []string `json:"numbers"`
	Message string   `json:"message"`
}

// Output carries the gateway reply untouched.
type Output struct {
	Provider string `json:"provider"`
	Raw      string `json:"raw"`
	Accepted bool   `json:"accepted"`
}

// Gateway submits one message to one or more numbers.
type Gateway interface {
	Send(ctx context.Context, input *Input) (*Output, error)
	Name() string
}

// SNSAPI is the slice of the SNS client the SNS gateway needs.
type SNSAPI interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type ServiceDependencies struct {
	Logger  logger.Logger
	Gateway Gateway
}

type GatewayDependencies struct {
	Secrets    secrets.Provider
	HTTPClient *http.Client
	SNS        SNSAPI
}

type textlocalResponse struct {
	Status string `json:"status"`
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

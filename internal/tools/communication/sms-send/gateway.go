package smssend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/http"
	"tool-dashboard/internal/common/secrets"
)

const serviceName = "SMS"

// NewGateway builds the gateway for the configured provider.
func NewGateway(cfg *Config, deps GatewayDependencies) (Gateway, error) {
	switch cfg.Provider {
	case ProviderSNS:
		if deps.SNS == nil {
			return nil, fmt.Errorf("sns client is required for the sns provider")
		}
		return &snsGateway{client: deps.SNS, senderID: cfg.SNSSenderID}, nil
	default:
		if deps.Secrets == nil {
			return nil, fmt.Errorf("secrets provider is required for the textlocal provider")
		}
		client := deps.HTTPClient
		if client == nil {
			client = http.NewClient(cfg.Timeout)
		}
		return &textlocalGateway{config: cfg, secrets: deps.Secrets, client: client}, nil
	}
}

// ==========================
// Textlocal
// ==========================

type textlocalGateway struct {
	config  *Config
	secrets secrets.Provider
	client  *http.Client
}

func (g *textlocalGateway) Name() string { return ProviderTextlocal }

func (g *textlocalGateway) Send(ctx context.Context, input *Input) (*Output, error) {
	apiKey, err := g.secrets.Get(ctx, g.config.APIKeySecret)
	if err != nil {
		return nil, errors.NewSecretUnavailableError(g.config.APIKeySecret, err)
	}

	form := url.Values{}
	form.Set("apikey", apiKey)
	form.Set("numbers", strings.Join(input.Numbers, ","))
	form.Set("message", input.Message)
	form.Set("sender", g.config.Sender)

	resp, err := g.client.PostForm(ctx, strings.TrimRight(g.config.BaseURL, "/")+"/send/", form)
	if err != nil {
		return nil, errors.FromCallError(serviceName, err)
	}

	var decoded textlocalResponse
	if err := resp.DecodeJSON(&decoded); err != nil {
		return nil, errors.NewUpstreamRejectedError(serviceName, resp.StatusCode, resp.Text())
	}

	return &Output{
		Provider: ProviderTextlocal,
		Raw:      resp.Text(),
		Accepted: resp.OK() && decoded.Status != "failure",
	}, nil
}

// ==========================
// SNS
// ==========================

type snsGateway struct {
	client   SNSAPI
	senderID string
}

func (g *snsGateway) Name() string { return ProviderSNS }

type snsDelivery struct {
	Number    string `json:"number"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Send publishes to each number in turn. A failing number does not stop the rest.
func (g *snsGateway) Send(ctx context.Context, input *Input) (*Output, error) {
	deliveries := make([]snsDelivery, 0, len(input.Numbers))
	accepted := true

	for _, number := range input.Numbers {
		publish := &sns.PublishInput{
			PhoneNumber: aws.String(number),
			Message:     aws.String(input.Message),
		}
		if g.senderID != "" {
			publish.MessageAttributes = map[string]types.MessageAttributeValue{
				"AWS.SNS.SMS.SenderID": {DataType: aws.String("String"), StringValue: aws.String(g.senderID)},
			}
		}

		out, err := g.client.Publish(ctx, publish)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.FromCallError(serviceName, ctx.Err())
			}
			accepted = false
			deliveries = append(deliveries, snsDelivery{Number: number, Error: err.Error()})
			continue
		}
		deliveries = append(deliveries, snsDelivery{Number: number, MessageID: aws.ToString(out.MessageId)})
	}

	raw, err := json.Marshal(map[string]interface{}{"deliveries": deliveries})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	return &Output{Provider: ProviderSNS, Raw: string(raw), Accepted: accepted}, nil
}

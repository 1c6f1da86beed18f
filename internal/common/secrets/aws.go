package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManagerAPI is the subset of the Secrets Manager client in use.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, input *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSProvider reads one JSON secret whose keys are secret names. The document
// is fetched on first use and cached; a failed fetch is retried on the next Get.
type AWSProvider struct {
	api      SecretsManagerAPI
	secretID string

	mu     sync.Mutex
	values map[string]string
}

func NewAWSProvider(api SecretsManagerAPI, secretID string) *AWSProvider {
	return &AWSProvider{api: api, secretID: secretID}
}

func (p *AWSProvider) Get(ctx context.Context, name string) (string, error) {
	values, err := p.load(ctx)
	if err != nil {
		return "", err
	}
	v, ok := values[name]
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return v, nil
}

func (p *AWSProvider) load(ctx context.Context) (map[string]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.values != nil {
		return p.values, nil
	}

	out, err := p.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: awssdk.String(p.secretID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch secret %s: %w", p.secretID, err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", p.secretID)
	}

	values := map[string]string{}
	if err := json.Unmarshal([]byte(*out.SecretString), &values); err != nil {
		return nil, fmt.Errorf("secret %s is not a JSON object of strings: %w", p.secretID, err)
	}

	p.values = values
	return values, nil
}

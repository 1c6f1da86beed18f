// internal/common/aws/secretsmanager.go
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManagerClient reads tool credentials from AWS Secrets Manager.
type SecretsManagerClient struct {
	client *secretsmanager.Client
}

func NewSecretsManagerClient(cfg awssdk.Config) *SecretsManagerClient {
	return &SecretsManagerClient{client: secretsmanager.NewFromConfig(cfg)}
}

func (s *SecretsManagerClient) GetSecretValue(ctx context.Context, input *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
	return s.client.GetSecretValue(ctx, input)
}

// internal/common/aws/config.go
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// LoadConfig resolves credentials from the default chain (env, shared files, instance role).
func LoadConfig(ctx context.Context, region string) (awssdk.Config, error) {
	if region == "" {
		return awssdk.Config{}, fmt.Errorf("aws region is required")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return awssdk.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}
	return cfg, nil
}

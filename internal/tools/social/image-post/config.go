package imagepost

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled     bool          `mapstructure:"enabled"`
	Timeout     time.Duration `mapstructure:"timeout"`
	BaseURL     string        `mapstructure:"base_url"`
	APIVersion  string        `mapstructure:"api_version"`
	TokenSecret string        `mapstructure:"token_secret"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:     true,
		Timeout:     60 * time.Second,
		BaseURL:     "https://graph.facebook.com",
		APIVersion:  "v18.0",
		TokenSecret: "graph_user_token",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.APIVersion == "" {
		return fmt.Errorf("api_version is required")
	}
	if c.TokenSecret == "" {
		return fmt.Errorf("token_secret is required")
	}
	return nil
}

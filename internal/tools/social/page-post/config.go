package pagepost

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled     bool          `mapstructure:"enabled"`
	Timeout     time.Duration `mapstructure:"timeout"`
	BaseURL     string        `mapstructure:"base_url"`
	TokenSecret string        `mapstructure:"token_secret"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:     true,
		Timeout:     30 * time.Second,
		BaseURL:     "https://graph.facebook.com",
		TokenSecret: "graph_page_token",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.TokenSecret == "" {
		return fmt.Errorf("token_secret is required")
	}
	return nil
}

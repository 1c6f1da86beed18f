package aisummary

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled      bool          `mapstructure:"enabled"`
	Timeout      time.Duration `mapstructure:"timeout"`
	BaseURL      string        `mapstructure:"base_url"`
	Model        string        `mapstructure:"model"`
	APIKeySecret string        `mapstructure:"api_key_secret"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		Timeout:      60 * time.Second,
		BaseURL:      "https://generativelanguage.googleapis.com",
		Model:        "gemini-2.5-flash",
		APIKeySecret: "genai_api_key",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.APIKeySecret == "" {
		return fmt.Errorf("api_key_secret is required")
	}
	return nil
}

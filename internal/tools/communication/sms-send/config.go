package smssend

import (
	"fmt"
	"time"
)

const (
	ProviderTextlocal = "textlocal"
	ProviderSNS       = "sns"
)

type Config struct {
	Enabled      bool          `mapstructure:"enabled"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Provider     string        `mapstructure:"provider"`
	BaseURL      string        `mapstructure:"base_url"`
	Sender       string        `mapstructure:"sender"`
	APIKeySecret string        `mapstructure:"api_key_secret"`
	// SNSSenderID is attached as the SMS sender id where carriers honour it.
	SNSSenderID string `mapstructure:"sns_sender_id"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		Timeout:      30 * time.Second,
		Provider:     ProviderTextlocal,
		BaseURL:      "https://api.textlocal.in",
		Sender:       "TXTLCL",
		APIKeySecret: "textlocal_api_key",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	switch c.Provider {
	case ProviderTextlocal:
		if c.BaseURL == "" {
			return fmt.Errorf("base_url is required")
		}
		if c.Sender == "" {
			return fmt.Errorf("sender is required")
		}
		if c.APIKeySecret == "" {
			return fmt.Errorf("api_key_secret is required")
		}
	case ProviderSNS:
	default:
		return fmt.Errorf("unsupported provider %q", c.Provider)
	}
	return nil
}

// secretNames lists the credentials the selected provider resolves.
func (c *Config) secretNames() []string {
	if c.Provider == ProviderTextlocal {
		return []string{c.APIKeySecret}
	}
	return nil
}

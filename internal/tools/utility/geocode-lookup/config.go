package geocodelookup

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled   bool          `mapstructure:"enabled"`
	Timeout   time.Duration `mapstructure:"timeout"`
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:   true,
		Timeout:   15 * time.Second,
		BaseURL:   "https://nominatim.openstreetmap.org",
		UserAgent: "tool-dashboard/1.0",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	// The public geocoder rejects anonymous clients.
	if c.UserAgent == "" {
		return fmt.Errorf("user_agent is required")
	}
	return nil
}

package markuppreview

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled   bool          `mapstructure:"enabled"`
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxLength int           `mapstructure:"max_length"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:   true,
		Timeout:   5 * time.Second,
		MaxLength: 200000,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxLength <= 0 {
		return fmt.Errorf("max_length must be positive")
	}
	return nil
}

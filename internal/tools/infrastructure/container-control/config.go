package containercontrol

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`
	Binary  string        `mapstructure:"binary"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Timeout: 2 * time.Minute,
		Binary:  "docker",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Binary == "" {
		return fmt.Errorf("binary is required")
	}
	return nil
}

package emailsend

import (
	"fmt"
	"time"
)

const (
	ProviderSMTP = "smtp"
	ProviderSES  = "ses"
)

type Config struct {
	Enabled        bool          `mapstructure:"enabled"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Provider       string        `mapstructure:"provider"`
	SMTPHost       string        `mapstructure:"smtp_host"`
	SMTPPort       int           `mapstructure:"smtp_port"`
	SMTPUsername   string        `mapstructure:"smtp_username"`
	UseTLS         bool          `mapstructure:"use_tls"`
	PasswordSecret string        `mapstructure:"password_secret"`
	// SESFromEmail overrides the form sender when mail goes out through SES,
	// which only accepts verified identities.
	SESFromEmail string `mapstructure:"ses_from_email"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		Timeout:        30 * time.Second,
		Provider:       ProviderSMTP,
		SMTPHost:       "smtp.gmail.com",
		SMTPPort:       587,
		UseTLS:         true,
		PasswordSecret: "smtp_password",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	switch c.Provider {
	case ProviderSMTP:
		if c.SMTPHost == "" {
			return fmt.Errorf("smtp_host is required")
		}
		if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
			return fmt.Errorf("smtp_port must be between 1 and 65535")
		}
		if c.PasswordSecret == "" {
			return fmt.Errorf("password_secret is required")
		}
	case ProviderSES:
	default:
		return fmt.Errorf("unsupported provider %q", c.Provider)
	}
	return nil
}

// secretNames lists the credentials the selected provider resolves.
func (c *Config) secretNames() []string {
	if c.Provider == ProviderSMTP {
		return []string{c.PasswordSecret}
	}
	return nil
}

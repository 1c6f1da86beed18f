package voicecall

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled     bool          `mapstructure:"enabled"`
	Timeout     time.Duration `mapstructure:"timeout"`
	BaseURL     string        `mapstructure:"base_url"`
	AccountSID  string        `mapstructure:"account_sid"`
	VoiceURL    string        `mapstructure:"voice_url"`
	TokenSecret string        `mapstructure:"token_secret"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:     true,
		Timeout:     30 * time.Second,
		BaseURL:     "https://api.twilio.com",
		VoiceURL:    "http://demo.twilio.com/docs/voice.xml",
		TokenSecret: "twilio_auth_token",
	}
}

// Validate checks the call settings. AccountSID is not required here.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.VoiceURL == "" {
		return fmt.Errorf("voice_url is required")
	}
	if c.TokenSecret == "" {
		return fmt.Errorf("token_secret is required")
	}
	return nil
}

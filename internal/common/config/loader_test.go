package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeYAML(t, `
tools:
  geocode-lookup:
    enabled: true
  markup-preview:
    enabled: false
    timeout: 500
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "tool-dashboard", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 90000, cfg.Server.WriteTimeout)
	assert.Equal(t, "env", cfg.Secrets.Provider)
	assert.Equal(t, "DASHBOARD_", cfg.Secrets.EnvPrefix)
	assert.Equal(t, "smtp", cfg.Integrations.SMTP.Provider)
	assert.Equal(t, "textlocal", cfg.Integrations.SMS.Provider)
	assert.Equal(t, "docker", cfg.Integrations.Container.Binary)
	assert.Equal(t, "dashboard:submissions", cfg.Audit.Redis.Key)
	assert.Equal(t, float64(1), cfg.Observability.SampleRatio)

	assert.Equal(t, ToolConfig{Enabled: true, Timeout: 30000}, cfg.Tools["geocode-lookup"])
	assert.Equal(t, ToolConfig{Enabled: false, Timeout: 500}, cfg.Tools["markup-preview"])
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("E2E_GEOCODER_URL", "http://geocoder.test")
	path := writeYAML(t, `
integrations:
  geocoding:
    base_url: ${E2E_GEOCODER_URL}
    user_agent: tests
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://geocoder.test", cfg.Integrations.Geocoding.BaseURL)
}

func TestLoadFromFile_EnvFallbacks(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "AC-from-env")
	path := writeYAML(t, `
integrations:
  twilio:
    account_sid: ""
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "AC-from-env", cfg.Integrations.Twilio.AccountSID)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "unknown secrets provider",
			content: "secrets:\n  provider: vault\n",
			errMsg:  "secrets.provider",
		},
		{
			name:    "aws secrets without id",
			content: "secrets:\n  provider: aws\n  region: us-east-1\n",
			errMsg:  "aws_secret_id",
		},
		{
			name:    "unknown email provider",
			content: "integrations:\n  smtp:\n    provider: mailgun\n",
			errMsg:  "integrations.smtp.provider",
		},
		{
			name:    "unknown sms provider",
			content: "integrations:\n  sms:\n    provider: carrier-pigeon\n",
			errMsg:  "integrations.sms.provider",
		},
		{
			name:    "redis audit without address",
			content: "audit:\n  enabled: true\n  redis:\n    enabled: true\n",
			errMsg:  "audit.redis.address",
		},
		{
			name:    "postgres audit without host",
			content: "audit:\n  enabled: true\n  postgres:\n    enabled: true\n",
			errMsg:  "audit.postgres.host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DASHBOARD_SECRET_ID", "")
			_, err := LoadFromFile(writeYAML(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGetToolConfig(t *testing.T) {
	cfg := &Config{Tools: map[string]ToolConfig{"sms-send": {Enabled: false, Timeout: 100}}}

	assert.Equal(t, ToolConfig{Enabled: false, Timeout: 100}, GetToolConfig(cfg, "sms-send"))
	assert.Equal(t, ToolConfig{Enabled: true, Timeout: 30000}, GetToolConfig(cfg, "voice-call"))
	assert.True(t, IsToolEnabled(nil, "voice-call"))
	assert.False(t, IsToolEnabled(cfg, "sms-send"))
}

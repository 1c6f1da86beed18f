// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	// base config is optional: defaults cover a local run
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	return finalize(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finalize(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	// APP_ENVIRONMENT, SERVER_ADDRESS, INTEGRATIONS_TWILIO_ACCOUNT_SID ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func finalize(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the first candidate location that exists.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills a few well-known settings from plain env names
// when the config file leaves them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Integrations.Twilio.AccountSID == "" {
		if val := os.Getenv("TWILIO_ACCOUNT_SID"); val != "" {
			cfg.Integrations.Twilio.AccountSID = val
		}
	}
	if cfg.Integrations.SMTP.Username == "" {
		if val := os.Getenv("SMTP_USERNAME"); val != "" {
			cfg.Integrations.SMTP.Username = val
		}
	}
	if cfg.Secrets.AWSSecretID == "" {
		if val := os.Getenv("DASHBOARD_SECRET_ID"); val != "" {
			cfg.Secrets.AWSSecretID = val
		}
	}
	if cfg.Audit.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Audit.Postgres.User = val
		}
	}
	if cfg.Audit.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Audit.Postgres.Password = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "tool-dashboard"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		// must outlive the slowest tool timeout
		cfg.Server.WriteTimeout = 90000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	for key, tool := range cfg.Tools {
		if tool.Timeout == 0 {
			tool.Timeout = 30000
		}
		cfg.Tools[key] = tool
	}

	if cfg.Integrations.Container.Binary == "" {
		cfg.Integrations.Container.Binary = "docker"
	}
	if cfg.Integrations.SMTP.Provider == "" {
		cfg.Integrations.SMTP.Provider = "smtp"
	}
	if cfg.Integrations.SMS.Provider == "" {
		cfg.Integrations.SMS.Provider = "textlocal"
	}

	if cfg.Secrets.Provider == "" {
		cfg.Secrets.Provider = "env"
	}
	if cfg.Secrets.EnvPrefix == "" {
		cfg.Secrets.EnvPrefix = "DASHBOARD_"
	}
	if cfg.Secrets.Region == "" {
		cfg.Secrets.Region = cfg.Integrations.AWS.Region
	}

	if cfg.Audit.Redis.Key == "" {
		cfg.Audit.Redis.Key = "dashboard:submissions"
	}
	if cfg.Audit.Redis.MaxEntries == 0 {
		cfg.Audit.Redis.MaxEntries = 500
	}
	if cfg.Audit.Postgres.Table == "" {
		cfg.Audit.Postgres.Table = "tool_submissions"
	}
	if cfg.Audit.Postgres.MaxConnections == 0 {
		cfg.Audit.Postgres.MaxConnections = 10
	}
	if cfg.Audit.Postgres.MaxIdle == 0 {
		cfg.Audit.Postgres.MaxIdle = 2
	}
	if cfg.Audit.Postgres.SSLMode == "" {
		cfg.Audit.Postgres.SSLMode = "disable"
	}
	if cfg.Audit.Elasticsearch.Index == "" {
		cfg.Audit.Elasticsearch.Index = "tool-submissions"
	}
	if cfg.Audit.Elasticsearch.URL == "" && len(cfg.Audit.Elasticsearch.Addresses) > 0 {
		cfg.Audit.Elasticsearch.URL = cfg.Audit.Elasticsearch.Addresses[0]
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Observability.SampleRatio == 0 {
		cfg.Observability.SampleRatio = 1
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}

	switch cfg.Secrets.Provider {
	case "env":
	case "aws":
		if cfg.Secrets.AWSSecretID == "" {
			return fmt.Errorf("secrets.aws_secret_id is required for the aws provider")
		}
		if cfg.Secrets.Region == "" {
			return fmt.Errorf("secrets.region or integrations.aws.region is required for the aws provider")
		}
	default:
		return fmt.Errorf("secrets.provider must be env or aws, got %q", cfg.Secrets.Provider)
	}

	switch cfg.Integrations.SMTP.Provider {
	case "smtp", "ses":
	default:
		return fmt.Errorf("integrations.smtp.provider must be smtp or ses, got %q", cfg.Integrations.SMTP.Provider)
	}

	switch cfg.Integrations.SMS.Provider {
	case "textlocal", "sns":
	default:
		return fmt.Errorf("integrations.sms.provider must be textlocal or sns, got %q", cfg.Integrations.SMS.Provider)
	}

	if !cfg.Audit.Enabled {
		return nil
	}

	if cfg.Audit.Redis.Enabled && cfg.Audit.Redis.Address == "" {
		return fmt.Errorf("audit.redis.address is required")
	}
	if cfg.Audit.Postgres.Enabled {
		if cfg.Audit.Postgres.Host == "" {
			return fmt.Errorf("audit.postgres.host is required")
		}
		if cfg.Audit.Postgres.Database == "" {
			return fmt.Errorf("audit.postgres.database is required")
		}
		if cfg.Audit.Postgres.User == "" {
			return fmt.Errorf("audit.postgres.user is required")
		}
	}
	if cfg.Audit.Elasticsearch.Enabled && cfg.Audit.Elasticsearch.GetURL() == "" {
		return fmt.Errorf("audit.elasticsearch.addresses or url is required")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetToolConfig retrieves tool-specific configuration with fallback to defaults
func GetToolConfig(cfg *Config, toolName string) ToolConfig {
	if cfg != nil {
		if tool, exists := cfg.Tools[toolName]; exists {
			return tool
		}
	}

	return ToolConfig{
		Enabled: true,
		Timeout: 30000,
	}
}

// IsToolEnabled checks if a specific tool is enabled
func IsToolEnabled(cfg *Config, toolName string) bool {
	return GetToolConfig(cfg, toolName).Enabled
}

// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig             `mapstructure:"app"`
	Server        ServerConfig          `mapstructure:"server"`
	Tools         map[string]ToolConfig `mapstructure:"tools"`
	Integrations  IntegrationConfig     `mapstructure:"integrations"`
	Secrets       SecretsConfig         `mapstructure:"secrets"`
	Audit         AuditConfig           `mapstructure:"audit"`
	Logging       LoggingConfig         `mapstructure:"logging"`
	Observability ObservabilityConfig   `mapstructure:"observability"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// ToolConfig holds the core settings applicable to every dashboard tool.
type ToolConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Timeout int  `mapstructure:"timeout"` // milliseconds
}

// SecretsConfig selects where tool credentials are resolved from.
type SecretsConfig struct {
	Provider    string `mapstructure:"provider"` // env | aws
	EnvPrefix   string `mapstructure:"env_prefix"`
	AWSSecretID string `mapstructure:"aws_secret_id"`
	Region      string `mapstructure:"region"`
}

// AuditConfig holds the sinks that receive one record per submission.
type AuditConfig struct {
	Enabled       bool                     `mapstructure:"enabled"`
	Redis         RedisAuditConfig         `mapstructure:"redis"`
	Postgres      PostgresAuditConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchAuditConfig `mapstructure:"elasticsearch"`
}

type RedisAuditConfig struct {
	RedisConfig `mapstructure:",squash"`

	Enabled    bool   `mapstructure:"enabled"`
	Key        string `mapstructure:"key"`
	MaxEntries int    `mapstructure:"max_entries"`
}

type PostgresAuditConfig struct {
	PostgresConfig `mapstructure:",squash"`

	Enabled bool   `mapstructure:"enabled"`
	Table   string `mapstructure:"table"`
}

type ElasticsearchAuditConfig struct {
	ElasticsearchConfig `mapstructure:",squash"`

	Enabled bool   `mapstructure:"enabled"`
	Index   string `mapstructure:"index"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // Single URL shorthand for addresses
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Integration Configuration ---

// IntegrationConfig holds the endpoints of every external collaborator.
// Credentials are never configured here; they live in the secret store.
type IntegrationConfig struct {
	GenAI struct {
		BaseURL string `mapstructure:"base_url"`
		Model   string `mapstructure:"model"`
	} `mapstructure:"genai"`

	Container struct {
		Binary string `mapstructure:"binary"`
	} `mapstructure:"container"`

	SMTP struct {
		Provider string `mapstructure:"provider"` // smtp | ses
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Username string `mapstructure:"username"`
		UseTLS   bool   `mapstructure:"use_tls"`
	} `mapstructure:"smtp"`

	Twilio struct {
		BaseURL    string `mapstructure:"base_url"`
		AccountSID string `mapstructure:"account_sid"`
		VoiceURL   string `mapstructure:"voice_url"`
	} `mapstructure:"twilio"`

	Graph struct {
		BaseURL    string `mapstructure:"base_url"`
		APIVersion string `mapstructure:"api_version"`
	} `mapstructure:"graph"`

	Geocoding struct {
		BaseURL   string `mapstructure:"base_url"`
		UserAgent string `mapstructure:"user_agent"`
	} `mapstructure:"geocoding"`

	SMS struct {
		Provider string `mapstructure:"provider"` // textlocal | sns
	} `mapstructure:"sms"`

	Textlocal struct {
		BaseURL string `mapstructure:"base_url"`
		Sender  string `mapstructure:"sender"`
	} `mapstructure:"textlocal"`

	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled            bool   `mapstructure:"enabled"`
			DefaultSMSSenderID string `mapstructure:"default_sms_sender_id"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ObservabilityConfig holds tracing settings. Metrics are always exported on /metrics.
type ObservabilityConfig struct {
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}

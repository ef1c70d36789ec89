package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.0"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Tracing     TracingConfig
	SMTP        SMTPConfig
	Builder     BuilderConfig
	TemplateAPI TemplateAPIConfig
	Send        SendConfig
	Webhook     EventWebhookConfig
	Environment string
	APIEndpoint string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port            int
	Host            string
	CORSAllowOrigin string
	SSL             SSLConfig
}

type SSLConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// Trace exporter configuration
	TraceExporter string // "jaeger", "zipkin", "none"

	JaegerEndpoint string
	ZipkinEndpoint string

	// Metrics exporter configuration
	MetricsExporter string // "prometheus", "none"
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// BuilderConfig controls template builder sessions
type BuilderConfig struct {
	SessionTTL time.Duration
	MessageTTL time.Duration
}

// TemplateAPIConfig points the builder at a remote template store.
// An empty Endpoint means templates are stored locally.
type TemplateAPIConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// SendConfig controls bulk campaign sends
type SendConfig struct {
	Concurrency int
}

// EventWebhookConfig forwards bus events to an external URL.
// An empty URL disables it.
type EventWebhookConfig struct {
	URL    string
	Secret string
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "mailforge")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("VERSION", VERSION)

	// SMTP defaults
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_FROM_NAME", "Mailforge")

	// Builder defaults
	v.SetDefault("BUILDER_SESSION_TTL", "2h")
	v.SetDefault("BUILDER_MESSAGE_TTL", "5s")

	// Template store defaults
	v.SetDefault("TEMPLATE_API_ENDPOINT", "")
	v.SetDefault("TEMPLATE_API_TIMEOUT", "10s")

	v.SetDefault("SEND_CONCURRENCY", 5)
	v.SetDefault("EVENT_WEBHOOK_URL", "")

	// Default tracing config
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "mailforge-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			Host:            v.GetString("SERVER_HOST"),
			CORSAllowOrigin: v.GetString("CORS_ALLOW_ORIGIN"),
			SSL: SSLConfig{
				Enabled:  v.GetBool("SSL_ENABLED"),
				CertFile: v.GetString("SSL_CERT_FILE"),
				KeyFile:  v.GetString("SSL_KEY_FILE"),
			},
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		SMTP: SMTPConfig{
			Host:      v.GetString("SMTP_HOST"),
			Port:      v.GetInt("SMTP_PORT"),
			Username:  v.GetString("SMTP_USERNAME"),
			Password:  v.GetString("SMTP_PASSWORD"),
			FromEmail: v.GetString("SMTP_FROM_EMAIL"),
			FromName:  v.GetString("SMTP_FROM_NAME"),
		},
		Builder: BuilderConfig{
			SessionTTL: v.GetDuration("BUILDER_SESSION_TTL"),
			MessageTTL: v.GetDuration("BUILDER_MESSAGE_TTL"),
		},
		TemplateAPI: TemplateAPIConfig{
			Endpoint: strings.TrimRight(v.GetString("TEMPLATE_API_ENDPOINT"), "/"),
			Timeout:  v.GetDuration("TEMPLATE_API_TIMEOUT"),
		},
		Send: SendConfig{
			Concurrency: v.GetInt("SEND_CONCURRENCY"),
		},
		Webhook: EventWebhookConfig{
			URL:    v.GetString("EVENT_WEBHOOK_URL"),
			Secret: v.GetString("EVENT_WEBHOOK_SECRET"),
		},
		Tracing: TracingConfig{
			Enabled:             v.GetBool("TRACING_ENABLED"),
			ServiceName:         v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability: v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:       v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:      v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:      v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			MetricsExporter:     v.GetString("TRACING_METRICS_EXPORTER"),
		},

		Environment: v.GetString("ENVIRONMENT"),
		APIEndpoint: v.GetString("API_ENDPOINT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the services cannot run with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.SSL.Enabled && (c.Server.SSL.CertFile == "" || c.Server.SSL.KeyFile == "") {
		return fmt.Errorf("SSL_CERT_FILE and SSL_KEY_FILE are required when SSL_ENABLED is set")
	}
	if c.Builder.SessionTTL <= 0 {
		return fmt.Errorf("BUILDER_SESSION_TTL must be positive")
	}
	if c.Builder.MessageTTL <= 0 {
		return fmt.Errorf("BUILDER_MESSAGE_TTL must be positive")
	}
	if c.TemplateAPI.Endpoint != "" && c.TemplateAPI.Timeout <= 0 {
		return fmt.Errorf("TEMPLATE_API_TIMEOUT must be positive")
	}
	if c.Send.Concurrency < 1 {
		return fmt.Errorf("SEND_CONCURRENCY must be at least 1, got %d", c.Send.Concurrency)
	}
	if c.Webhook.URL != "" && c.Webhook.Secret == "" {
		return fmt.Errorf("EVENT_WEBHOOK_SECRET is required when EVENT_WEBHOOK_URL is set")
	}
	switch c.Tracing.TraceExporter {
	case "jaeger", "zipkin", "none", "":
	default:
		return fmt.Errorf("unsupported TRACING_TRACE_EXPORTER: %s", c.Tracing.TraceExporter)
	}
	switch c.Tracing.MetricsExporter {
	case "prometheus", "none", "":
	default:
		return fmt.Errorf("unsupported TRACING_METRICS_EXPORTER: %s", c.Tracing.MetricsExporter)
	}
	return nil
}

// UsesRemoteTemplateStore reports whether saved templates go to TEMPLATE_API_ENDPOINT
func (c *Config) UsesRemoteTemplateStore() bool {
	return c.TemplateAPI.Endpoint != ""
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

// ServerConfig contains HTTP server and logging settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"log_format"       validate:"required,oneof=json text"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig selects the storage dialect and its connection string.
// For sqlite the URL is a file path.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"         validate:"required,oneof=postgres sqlite"`
	URL          string `mapstructure:"url"            validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
}

// AuthConfig contains bearer token settings. The secret is only required by
// the HTTP server.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
}

// LLMConfig selects the generation provider.
type LLMConfig struct {
	Provider     string        `mapstructure:"provider"       validate:"required,oneof=openai gemini"`
	OpenAIAPIKey string        `mapstructure:"openai_api_key" validate:"required_if=Provider openai"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	Model        string        `mapstructure:"model"`
	BaseURL      string        `mapstructure:"base_url"       validate:"omitempty,url"`
	Temperature  float32       `mapstructure:"temperature"    validate:"gte=0,lte=2"`
	Timeout      time.Duration `mapstructure:"timeout"        validate:"gt=0"`
}

// GenerationConfig bounds the retry loop.
type GenerationConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"required,gte=1"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"  validate:"gte=0"`
	Timeout     time.Duration `mapstructure:"timeout"      validate:"gt=0"`
}

// AnalysisConfig toggles post-validation text analysis.
type AnalysisConfig struct {
	FillReadings bool `mapstructure:"fill_readings"`
}

// TracingConfig configures OpenTelemetry export. An empty endpoint exports to
// stdout.
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name" validate:"required_if=Enabled true"`
	Endpoint    string `mapstructure:"endpoint"`
	Insecure    bool   `mapstructure:"insecure"`
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TODAKU"

var defaults = map[string]any{
	"server.port":             8080,
	"server.log_level":        "info",
	"server.log_format":       "json",
	"server.shutdown_timeout": "10s",
	"database.driver":         "sqlite",
	"database.url":            "todaku.db",
	"database.max_open_conns": 10,
	"auth.jwt_secret":         "",
	"llm.provider":            "openai",
	"llm.openai_api_key":      "",
	"llm.gemini_api_key":      "",
	"llm.model":               "",
	"llm.base_url":            "",
	"llm.temperature":         0.7,
	"llm.timeout":             "3m",
	"generation.max_attempts": 3,
	"generation.retry_delay":  "1s",
	"generation.timeout":      "3m",
	"analysis.fill_readings":  true,
	"tracing.enabled":         false,
	"tracing.service_name":    "todaku-api",
	"tracing.endpoint":        "",
	"tracing.insecure":        false,
}

// Load reads configuration from defaults, an optional YAML file and
// TODAKU_* environment variables, in increasing order of precedence.
// An empty configFile searches ./config.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

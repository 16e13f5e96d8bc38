package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. SIGNUP_SERVER_PORT for server.port.
const EnvPrefix = "SIGNUP"

// DefaultAPIKeyPrefix is used when neither the config file nor the
// environment provide an API key prefix.
const DefaultAPIKeyPrefix = "cal_"

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are invisible to Unmarshal unless bound explicitly.
	if err := v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind database url: %w", err)
	}
	// The bare API_KEY_PREFIX variable is the documented way to override the
	// key prefix; the prefixed form is accepted for consistency.
	if err := v.BindEnv("auth.api_key_prefix", EnvPrefix+"_AUTH_API_KEY_PREFIX", "API_KEY_PREFIX"); err != nil {
		return nil, fmt.Errorf("failed to bind api key prefix: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if prefix, set := explicitAPIKeyPrefix(); set {
		cfg.Auth.APIKeyPrefix = prefix
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// explicitAPIKeyPrefix reports a key prefix set in the environment, including
// an empty one, which viper would otherwise treat as unset.
func explicitAPIKeyPrefix() (string, bool) {
	for _, name := range []string{EnvPrefix + "_AUTH_API_KEY_PREFIX", "API_KEY_PREFIX"} {
		if value, set := os.LookupEnv(name); set {
			return value, true
		}
	}
	return "", false
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("auth.api_key_prefix", DefaultAPIKeyPrefix)
}

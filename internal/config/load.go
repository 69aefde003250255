package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables with the SRS_ prefix
// (e.g. SRS_SERVER_PORT, SRS_DATABASE_URL). Defaults are applied first, then
// environment values, then the result is validated. Returns a populated
// Config or an error describing what failed.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults double as the key registry: AutomaticEnv only picks up
	// keys viper already knows about.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.url", "")
	v.SetDefault("scheduler.min_ease_factor", 0)
	v.SetDefault("scheduler.max_ease_factor", 0)
	v.SetDefault("scheduler.success_ease_bonus", 0)
	v.SetDefault("scheduler.failure_ease_penalty", 0)
	v.SetDefault("scheduler.failure_interval_factor", 0)
	v.SetDefault("scheduler.relearn_interval_days", 0)
	v.SetDefault("scheduler.max_session_cards", 20)

	v.SetEnvPrefix("SRS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// SchedulerConfig tunes the review scheduling algorithm. Every field is
// optional; zero values keep the algorithm defaults (see srs.NewParams).
type SchedulerConfig struct {
	MinEaseFactor         float64 `mapstructure:"min_ease_factor"         validate:"omitempty,gt=1"`
	MaxEaseFactor         float64 `mapstructure:"max_ease_factor"         validate:"omitempty,gtefield=MinEaseFactor"`
	SuccessEaseBonus      float64 `mapstructure:"success_ease_bonus"      validate:"omitempty,gt=0"`
	FailureEasePenalty    float64 `mapstructure:"failure_ease_penalty"    validate:"omitempty,gt=0"`
	FailureIntervalFactor float64 `mapstructure:"failure_interval_factor" validate:"omitempty,gt=0,lte=1"`
	RelearnIntervalDays   int     `mapstructure:"relearn_interval_days"   validate:"omitempty,gte=1"`

	// MaxSessionCards caps how many cards a single study session may hold.
	MaxSessionCards int `mapstructure:"max_session_cards" validate:"required,gte=1"`
}

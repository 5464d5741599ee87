package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
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

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret        string `mapstructure:"jwt_secret"         validate:"required,min=32"`
	TokenLifetimeMin int    `mapstructure:"token_lifetime_min" validate:"required,gt=0"`
}

// SchedulerConfig contains the FSRS parameter set. Weights must either be
// omitted (the published defaults apply) or list all 19 values.
type SchedulerConfig struct {
	Weights         []float64 `mapstructure:"weights"           validate:"omitempty,len=19"`
	TargetRetention float64   `mapstructure:"target_retention"  validate:"required,gt=0,lt=1"`
	MaxIntervalDays int       `mapstructure:"max_interval_days" validate:"required,gte=1"`
}

package config

import "time"

// Config holds all application configuration.
// It is built once at startup by Load and passed by value or pointer to the
// components that need it; nothing mutates it afterwards.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"     validate:"required,min=1,dive,required"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// ShutdownTimeout returns the graceful shutdown window.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                       validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gt=0"`
	// AutoMigrate applies pending migrations when the server starts.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret signs session tokens. It has no default and must be supplied
	// per deployment.
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32,notplaceholder"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}

// TokenLifetime returns the session token lifetime.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. GENOPS_AUTH_JWT_SECRET.
const EnvPrefix = "GENOPS"

// placeholderSecrets are fragments of sample secrets that must never reach a deployment.
var placeholderSecrets = []string{
	"change_this",
	"change-this",
	"changeme",
	"your_secret",
	"your-secret",
}

// Options controls where Load looks for configuration.
type Options struct {
	// EnvFile is an optional dotenv file. Variables already set in the
	// environment take precedence over the file.
	EnvFile string
	// ConfigPaths are searched for config.yaml.
	ConfigPaths []string
	// SkipAuth validates only the server and database sections, for
	// commands that never issue or verify tokens.
	SkipAuth bool
}

// DefaultOptions reads ./.env and config.yaml from . or ./config.
func DefaultOptions() Options {
	return Options{
		EnvFile:     ".env",
		ConfigPaths: []string{".", "./config"},
	}
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithOptions(DefaultOptions())
}

// LoadWithOptions is Load with explicit file locations.
func LoadWithOptions(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range opts.ConfigPaths {
		v.AddConfigPath(p)
	}
	if len(opts.ConfigPaths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are invisible to Unmarshal unless bound explicitly.
	for _, key := range []string{"database.url", "auth.jwt_secret"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validateFn := Validate
	if opts.SkipAuth {
		validateFn = validateWithoutAuth
	}
	if err := validateFn(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	return validateStructs(cfg)
}

func validateWithoutAuth(cfg *Config) error {
	return validateStructs(&cfg.Server, &cfg.Database)
}

func validateStructs(structs ...interface{}) error {
	validate := validator.New()
	if err := validate.RegisterValidation("notplaceholder", notPlaceholder); err != nil {
		return fmt.Errorf("failed to register validator: %w", err)
	}
	for _, st := range structs {
		if err := validate.Struct(st); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5002)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("auth.token_lifetime_minutes", 24*60)
	v.SetDefault("auth.bcrypt_cost", 10)
}

func notPlaceholder(fl validator.FieldLevel) bool {
	secret := strings.ToLower(fl.Field().String())
	for _, p := range placeholderSecrets {
		if strings.Contains(secret, p) {
			return false
		}
	}
	return true
}

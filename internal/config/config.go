package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DevJWTSecret is the signing key used when none is configured outside production
const DevJWTSecret = "ilmkids-development-secret"

var ErrInsecureSecret = errors.New("JWT_SECRET must be set in production")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env         string          `mapstructure:"env" validate:"required"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	CatalogPath string          `mapstructure:"catalog_path" validate:"required"`
	JWT         JWTConfig       `mapstructure:"jwt"`
	SES         SESConfig       `mapstructure:"ses"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig selects the store. "memory" keeps everything in process.
type DatabaseConfig struct {
	Type           string `mapstructure:"type" validate:"oneof=memory sqlite postgres mysql"`
	Path           string `mapstructure:"path" validate:"required_if=Type sqlite"`
	URL            string `mapstructure:"url" validate:"required_if=Type postgres,required_if=Type mysql"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

// JWTConfig configures access tokens
type JWTConfig struct {
	Secret string        `mapstructure:"secret" validate:"required,min=16"`
	TTL    time.Duration `mapstructure:"ttl" validate:"gt=0"`
	Issuer string        `mapstructure:"issuer" validate:"required"`
}

// SESConfig configures badge e-mails. An empty FromEmail disables sending.
type SESConfig struct {
	Region    string `mapstructure:"region"`
	FromEmail string `mapstructure:"from_email" validate:"omitempty,email"`
	FromName  string `mapstructure:"from_name"`
}

// RateLimitConfig limits login and registration attempts per client.
// Only TrustedProxies (addresses or CIDRs) may set X-Forwarded-For / X-Real-IP.
type RateLimitConfig struct {
	Requests       int           `mapstructure:"requests" validate:"gt=0"`
	Window         time.Duration `mapstructure:"window" validate:"gt=0"`
	TrustedProxies []string      `mapstructure:"trusted_proxies"`
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from configDir/config.yaml (optional) and the environment.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetDefault("env", "local")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("database.type", "memory")
	v.SetDefault("database.path", "./ilmkids.db")
	v.SetDefault("database.migrations_path", "./migrations")
	v.SetDefault("catalog_path", "./data/catalog.json")
	v.SetDefault("jwt.secret", DevJWTSecret)
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("jwt.issuer", "ilmkids")
	v.SetDefault("ses.region", "us-east-1")
	v.SetDefault("ses.from_name", "IlmKids")
	v.SetDefault("rate_limit.requests", 10)
	v.SetDefault("rate_limit.window", "1m")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"env":                        "APP_ENV",
		"server.port":                "PORT",
		"database.type":              "DB_TYPE",
		"database.path":              "DB_PATH",
		"database.url":               "DATABASE_URL",
		"database.migrations_path":   "MIGRATIONS_PATH",
		"catalog_path":               "CATALOG_PATH",
		"jwt.secret":                 "JWT_SECRET",
		"jwt.ttl":                    "JWT_TTL",
		"ses.region":                 "AWS_REGION",
		"ses.from_email":             "SES_FROM_EMAIL",
		"ses.from_name":              "SES_FROM_NAME",
		"rate_limit.trusted_proxies": "TRUSTED_PROXIES",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.Database.Type = strings.ToLower(cfg.Database.Type)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and production-only requirements
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.IsProduction() && c.JWT.Secret == DevJWTSecret {
		return ErrInsecureSecret
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"deals-backend/utils"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	AppEnv         string `env:"APP_ENV" env-default:"development"`
	Port           string `env:"PORT" env-default:"8080"`
	DatabaseURL    string `env:"DATABASE_URL"`
	JWTExpiresIn   string `env:"JWT_EXPIRES_IN" env-default:"7d"`
	FrontendURL    string `env:"FRONTEND_URL"`
	AdminURL       string `env:"ADMIN_URL"`
	AdminEmail     string `env:"ADMIN_EMAIL" env-default:"admin@deals247.com"`
	AdminPassword  string `env:"ADMIN_PASSWORD"`
	AdminName      string `env:"ADMIN_NAME" env-default:"Admin"`
	SeedDemoData   bool   `env:"SEED_DEMO_DATA" env-default:"false"`
	LoginRateLimit int    `env:"LOGIN_RATE_LIMIT" env-default:"10"`
	ClickRateLimit int    `env:"CLICK_RATE_LIMIT" env-default:"60"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CORSOrigins returns the configured frontend origins, skipping empty ones.
func (c *Config) CORSOrigins() []string {
	var origins []string
	for _, o := range []string{c.FrontendURL, c.AdminURL} {
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// LoadEnv merges .env into the process environment. A missing file is fine
// outside local development; an unreadable or malformed one is an error.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Load reads the typed configuration from the process environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if cfg.LoginRateLimit < 1 || cfg.ClickRateLimit < 1 {
		return nil, fmt.Errorf("rate limits must be positive")
	}
	if _, err := utils.ParseTokenLifetime(cfg.JWTExpiresIn); err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	return &cfg, nil
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv(logger *zap.Logger) error {
	var missing []string

	if os.Getenv("JWT_SECRET") == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	if os.Getenv("FRONTEND_URL") == "" {
		logger.Warn("FRONTEND_URL not set - CORS may not work correctly")
	}
	if os.Getenv("ADMIN_URL") == "" {
		logger.Warn("ADMIN_URL not set")
	}
	if os.Getenv("ADMIN_PASSWORD") == "" {
		logger.Warn("ADMIN_PASSWORD not set - default admin will not be created")
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/Simplici0/haulcalc/internal/pricing"
)

const (
	defaultEnv      = "dev"
	defaultDBPath   = "./dev.db"
	defaultPort     = 8080
	defaultLogLevel = "info"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env       string
	Port      int
	DBPath    string
	LogLevel  string
	LogFormat string
	InputMode pricing.ParseMode
}

// IsDev reports whether the application runs in the development environment.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads environment variables and returns a populated Config.
func Load() (Config, error) {
	// A missing .env is fine; production injects real environment variables.
	_ = godotenv.Load(".env")

	cfg := Config{
		Env:      strings.ToLower(cast.ToString(getOrReturnDefault("APP_ENV", defaultEnv))),
		DBPath:   cast.ToString(getOrReturnDefault("DB_PATH", defaultDBPath)),
		LogLevel: strings.ToLower(cast.ToString(getOrReturnDefault("LOG_LEVEL", defaultLogLevel))),
	}

	port, err := cast.ToIntE(getOrReturnDefault("PORT", defaultPort))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a valid port number, got %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	defaultFormat := "json"
	if cfg.IsDev() {
		defaultFormat = "console"
	}
	cfg.LogFormat = strings.ToLower(cast.ToString(getOrReturnDefault("LOG_FORMAT", defaultFormat)))

	cfg.InputMode, err = pricing.ParseParseMode(os.Getenv("INPUT_MODE"))
	if err != nil {
		return Config{}, fmt.Errorf("INPUT_MODE: %w", err)
	}

	return cfg, nil
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	Port         string `env:"PORT" default:"8090"`
	DataPath     string `env:"DATA_PATH" default:"cleaned_bohemian_comments.csv"`
	DBPath       string `env:"DB_PATH" default:"comments.db"`
	TemplatesDir string `env:"TEMPLATES_DIR" default:"templates"`
	GinMode      string `env:"GIN_MODE" default:"release"`
	LogLevel     string `env:"LOG_LEVEL" default:"info"`
	LogFormat    string `env:"LOG_FORMAT" default:"json"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DataPath == "" {
		return errors.New("DATA_PATH is required")
	}
	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", cfg.Port)
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be one of debug, release, test, got %q", cfg.GinMode)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

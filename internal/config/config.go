package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfig is the process configuration read from the environment.
type EnvConfig struct {
	APP_PORT string `env:"PORT" envDefault:"3000"`

	LOG_LEVEL     string `env:"LOG_LEVEL" envDefault:"info"`
	LOG_FILE_PATH string `env:"LOG_FILE_PATH"`

	// Static roots. XLSX_DIR is where /api/xlsx and /api/xlsxv2 look up files.
	FRONTEND_DIR string `env:"FRONTEND_DIR" envDefault:"frontend"`
	STATIC_DIR   string `env:"STATIC_DIR" envDefault:"static"`
	XLSX_DIR     string `env:"XLSX_DIR" envDefault:"static/xlsx"`

	BODY_LIMIT         string        `env:"BODY_LIMIT" envDefault:"10M"`
	READ_TIMEOUT       time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WRITE_TIMEOUT      time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	SHUTDOWN_TIMEOUT   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORS_ALLOW_ORIGINS []string      `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`
}

var DefaultEnvConfig EnvConfig

// LoadEnvConfig loads the given .env files (".env" when none are given) and
// parses the environment into DefaultEnvConfig. Missing .env files are not
// an error; variables already set in the environment take precedence.
func LoadEnvConfig(envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg, err := env.ParseAs[EnvConfig]()
	if err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	DefaultEnvConfig = cfg
	return nil
}

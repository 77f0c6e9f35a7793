// Package config loads CLI configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	APIBaseURL   string        `env:"SMASHCAST_API_URL" default:"https://api.smashcast.tv"`
	MediaBaseURL string        `env:"SMASHCAST_MEDIA_URL" default:"https://edge.sf.hitbox.tv"`
	AuthToken    string        `env:"SMASHCAST_AUTH_TOKEN"`
	Login        string        `env:"SMASHCAST_LOGIN"`
	Password     string        `env:"SMASHCAST_PASSWORD"`
	AppName      string        `env:"SMASHCAST_APP" default:"desktop"`
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" default:"10s"`
	LogLevel     string        `env:"LOG_LEVEL" default:"info"`
	LogFormat    string        `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

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
	if cfg.APIBaseURL == "" {
		return errors.New("SMASHCAST_API_URL is required")
	}
	if cfg.MediaBaseURL == "" {
		return errors.New("SMASHCAST_MEDIA_URL is required")
	}
	if (cfg.Login == "") != (cfg.Password == "") {
		return errors.New("SMASHCAST_LOGIN and SMASHCAST_PASSWORD must be set together")
	}
	return nil
}

// HasCredentials reports whether the config carries any way to authenticate.
func (c *Config) HasCredentials() bool {
	return c.AuthToken != "" || c.Login != ""
}

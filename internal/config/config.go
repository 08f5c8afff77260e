package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the server configuration. Account and channel data live in
// the database.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Paths    PathsConfig    `yaml:"paths"`
	Messages MessagesConfig `yaml:"messages"`
	Sessions SessionsConfig `yaml:"sessions"`
	Hangman  HangmanConfig  `yaml:"hangman"`
}

// ServerConfig holds network listener settings.
type ServerConfig struct {
	HTTPPort   int `yaml:"http_port"`
	MaxStreams int `yaml:"max_streams"`
}

// PathsConfig holds filesystem paths for data files.
type PathsConfig struct {
	Data       string `yaml:"data"`
	Database   string `yaml:"database"`
	Dictionary string `yaml:"dictionary"`
}

// MessagesConfig bounds message bodies and pages.
type MessagesConfig struct {
	PageSize  int `yaml:"page_size"`
	MaxLength int `yaml:"max_length"`
}

// SessionsConfig controls login token lifetime and expiry sweeps.
type SessionsConfig struct {
	TTL       time.Duration `yaml:"ttl"`
	PurgeCron string        `yaml:"purge_cron"`
}

// HangmanConfig tunes the channel guessing game.
type HangmanConfig struct {
	MaxIncorrect int `yaml:"max_incorrect"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:   8080,
			MaxStreams: 256,
		},
		Paths: PathsConfig{
			Data:     "./data",
			Database: "./data/flockr.db",
		},
		Messages: MessagesConfig{
			PageSize:  50,
			MaxLength: 1000,
		},
		Sessions: SessionsConfig{
			TTL:       24 * time.Hour,
			PurgeCron: "*/15 * * * *",
		},
		Hangman: HangmanConfig{
			MaxIncorrect: 10,
		},
	}
}

// Load reads and parses a YAML config file, then applies FLOCKR_*
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	ints := []struct {
		key string
		dst *int
	}{
		{"FLOCKR_HTTP_PORT", &c.Server.HTTPPort},
		{"FLOCKR_MAX_STREAMS", &c.Server.MaxStreams},
		{"FLOCKR_PAGE_SIZE", &c.Messages.PageSize},
		{"FLOCKR_MAX_LENGTH", &c.Messages.MaxLength},
		{"FLOCKR_HANGMAN_MAX_INCORRECT", &c.Hangman.MaxIncorrect},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", e.key, err)
		}
		*e.dst = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"FLOCKR_DATA_DIR", &c.Paths.Data},
		{"FLOCKR_DATABASE", &c.Paths.Database},
		{"FLOCKR_DICTIONARY", &c.Paths.Dictionary},
		{"FLOCKR_PURGE_CRON", &c.Sessions.PurgeCron},
	}
	for _, e := range strs {
		if v := os.Getenv(e.key); v != "" {
			*e.dst = v
		}
	}

	if v := os.Getenv("FLOCKR_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse FLOCKR_SESSION_TTL: %w", err)
		}
		c.Sessions.TTL = d
	}
	return nil
}

func (c *Config) validate() error {
	switch {
	case c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535:
		return fmt.Errorf("invalid http_port %d", c.Server.HTTPPort)
	case c.Messages.PageSize <= 0:
		return fmt.Errorf("page_size must be positive, got %d", c.Messages.PageSize)
	case c.Messages.MaxLength <= 0:
		return fmt.Errorf("max_length must be positive, got %d", c.Messages.MaxLength)
	case c.Hangman.MaxIncorrect < 1 || c.Hangman.MaxIncorrect > 10:
		return fmt.Errorf("hangman max_incorrect must be 1-10, got %d", c.Hangman.MaxIncorrect)
	case c.Sessions.TTL <= 0:
		return fmt.Errorf("session ttl must be positive, got %s", c.Sessions.TTL)
	}
	return nil
}

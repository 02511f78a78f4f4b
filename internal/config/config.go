package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// maxSearchResults caps how many papers one search may request upstream.
const maxSearchResults = 100

// Config aggregates all service settings, loaded from the environment.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Arxiv  ArxivConfig
	Client ClientConfig
}

// ServerConfig describes the HTTP server.
type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
}

// Addr normalizes PORT into a listen address. Values like ":8080" or
// "127.0.0.1:8080" pass through untouched.
func (c ServerConfig) Addr() (string, error) {
	port := strings.TrimSpace(c.Port)
	if strings.Contains(port, ":") {
		return port, nil
	}
	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}
	return ":" + port, nil
}

// StoreConfig describes the SQLite database location.
type StoreConfig struct {
	Path string `env:"DB_PATH" envDefault:"paperchat.db"`
}

// ArxivConfig describes the upstream paper index.
type ArxivConfig struct {
	BaseURL    string        `env:"ARXIV_BASE_URL" envDefault:"https://export.arxiv.org/api/query"`
	MaxResults int           `env:"ARXIV_MAX_RESULTS" envDefault:"10"`
	Timeout    time.Duration `env:"ARXIV_TIMEOUT" envDefault:"30s"`
}

// ClientConfig describes how CLI clients reach the backend. One base URL
// covers every endpoint, the public listing included.
type ClientConfig struct {
	BaseURL string        `env:"PAPERCHAT_BASE_URL" envDefault:"http://localhost:8080"`
	Timeout time.Duration `env:"PAPERCHAT_TIMEOUT" envDefault:"30s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Arxiv.MaxResults < 1 {
		cfg.Arxiv.MaxResults = 1
	}
	if cfg.Arxiv.MaxResults > maxSearchResults {
		cfg.Arxiv.MaxResults = maxSearchResults
	}

	return cfg, nil
}

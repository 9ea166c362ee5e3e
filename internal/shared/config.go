package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Sync        SyncConfig        `toml:"sync"`
	Query       QueryConfig       `toml:"query"`
}

// CredentialsConfig contains provider-specific credentials.
type CredentialsConfig struct {
	Soundcharts SoundchartsConfig `toml:"soundcharts"`
	Spotify     SpotifyConfig     `toml:"spotify"`
	Google      GoogleConfig      `toml:"google"`
}

// SoundchartsConfig contains Soundcharts API credentials.
type SoundchartsConfig struct {
	AppID   string `toml:"app_id"`
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// SpotifyConfig contains Spotify partner API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenURL     string `toml:"token_url"`
	BaseURL      string `toml:"base_url"`
}

// GoogleConfig contains the Gemini generator credentials.
type GoogleConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// SyncConfig contains tunables for the analytics sync job.
type SyncConfig struct {
	Workers    int     `toml:"workers"`     // concurrent per-artist workers
	RateLimit  float64 `toml:"rate_limit"`  // upstream requests per second
	WindowDays int     `toml:"window_days"` // how far back each sync fetches
}

// QueryConfig contains tunables for the query-answer service.
type QueryConfig struct {
	RecentLimit int `toml:"recent_limit"` // metric rows embedded per answer
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

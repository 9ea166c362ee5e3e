package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "syrup.db" {
			t.Errorf("expected database path syrup.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8090 {
			t.Errorf("expected server port 8090, got %d", config.Server.Port)
		}

		if config.Sync.Workers != 5 {
			t.Errorf("expected 5 sync workers, got %d", config.Sync.Workers)
		}

		if config.Sync.WindowDays != 90 {
			t.Errorf("expected 90 window days, got %d", config.Sync.WindowDays)
		}

		if config.Query.RecentLimit != 30 {
			t.Errorf("expected recent limit 30, got %d", config.Query.RecentLimit)
		}

		if config.Credentials.Google.Model != "gemini-pro" {
			t.Errorf("expected model gemini-pro, got %s", config.Credentials.Google.Model)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 8080

[credentials.soundcharts]
app_id = "test_app_id"
api_key = "test_api_key"
base_url = "http://localhost:9090"

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"

[sync]
workers = 3
rate_limit = 2.5
window_days = 30
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Credentials.Soundcharts.AppID != "test_app_id" {
			t.Errorf("expected soundcharts app_id test_app_id, got %s", config.Credentials.Soundcharts.AppID)
		}

		if config.Sync.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %f", config.Sync.RateLimit)
		}
	})

	t.Run("LoadConfigMissingFile", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("loading a missing config file should fail")
		}
	})
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alephbot/alephbot/internal/config"
)

// Env access means no t.Parallel in this file.

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("NAKDAN_API_KEY", "test-api-key")
}

func TestLoadDefaults(t *testing.T) {
	setCredentials(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Discord.Token != "test-token" {
		t.Errorf("Discord.Token = %q, want value from DISCORD_TOKEN", cfg.Discord.Token)
	}
	if cfg.Nakdan.APIKey != "test-api-key" {
		t.Errorf("Nakdan.APIKey = %q, want value from NAKDAN_API_KEY", cfg.Nakdan.APIKey)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log defaults = %s/%s, want info/json", cfg.Log.Level, cfg.Log.Format)
	}
	if cfg.Nakdan.Timeout != 10*time.Second {
		t.Errorf("Nakdan.Timeout = %v, want 10s", cfg.Nakdan.Timeout)
	}
	if cfg.Nakdan.MaxTextLength != 500 {
		t.Errorf("Nakdan.MaxTextLength = %d, want 500", cfg.Nakdan.MaxTextLength)
	}
	if cfg.Bot.RequestTimeout != 25*time.Second {
		t.Errorf("Bot.RequestTimeout = %v, want 25s", cfg.Bot.RequestTimeout)
	}
	if cfg.Bot.CommandCooldown != 30*time.Second {
		t.Errorf("Bot.CommandCooldown = %v, want 30s", cfg.Bot.CommandCooldown)
	}
	if cfg.Database.UsageRetentionDays != 90 {
		t.Errorf("Database.UsageRetentionDays = %d, want 90", cfg.Database.UsageRetentionDays)
	}
	if cfg.DeepL.AuthKey != "" {
		t.Errorf("DeepL.AuthKey = %q, want empty when DEEPL_AUTH_KEY is unset", cfg.DeepL.AuthKey)
	}
}

func TestLoadMissingDiscordTokenFails(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("NAKDAN_API_KEY", "test-api-key")

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load succeeded without DISCORD_TOKEN, want validation error")
	}
}

func TestLoadMissingNakdanKeyFails(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("NAKDAN_API_KEY", "")

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load succeeded without NAKDAN_API_KEY, want validation error")
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	setCredentials(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "log:\n  level: debug\nnakdan:\n  max_text_length: 100\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug from file", cfg.Log.Level)
	}
	if cfg.Nakdan.MaxTextLength != 100 {
		t.Errorf("Nakdan.MaxTextLength = %d, want 100 from file", cfg.Nakdan.MaxTextLength)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want default json to survive partial file", cfg.Log.Format)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	setCredentials(t)
	t.Setenv("ALEPHBOT_LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn from ALEPHBOT_LOG_LEVEL", cfg.Log.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	setCredentials(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: verbose\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if _, err := config.Load(path); err == nil {
		t.Errorf("Load accepted log level outside the allowed set")
	}
}

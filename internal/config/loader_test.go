package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaultsWithEnvCredentials(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "test-token")
	t.Setenv("BOT_TELEGRAM_OWNER_ID", "1000")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}

	if cfg.Telegram.Token != "test-token" {
		t.Errorf("Token = %q, want %q", cfg.Telegram.Token, "test-token")
	}
	if cfg.Telegram.OwnerID != 1000 {
		t.Errorf("OwnerID = %d, want 1000", cfg.Telegram.OwnerID)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Moderation.DefaultDeleteDelay != DefaultDeleteDelay {
		t.Errorf("DefaultDeleteDelay = %v, want %v", cfg.Moderation.DefaultDeleteDelay, DefaultDeleteDelay)
	}
	if !cfg.Moderation.AutoDeleteDefault {
		t.Error("AutoDeleteDefault = false, want true")
	}
	if cfg.Messages.Welcome == "" {
		t.Error("Messages.Welcome is empty, want default text")
	}
	task, ok := cfg.Scheduler.Tasks["db_maintenance"]
	if !ok {
		t.Fatal("default db_maintenance task missing")
	}
	if !task.Enabled || task.Schedule == "" {
		t.Errorf("db_maintenance task = %+v, want enabled with schedule", task)
	}
}

func TestLoadConfigMissingCredentials(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadConfig() succeeded without telegram credentials, want validation error")
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "test-token")
	t.Setenv("BOT_TELEGRAM_OWNER_ID", "1000")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("log:\n  level: debug\nmoderation:\n  default_delete_delay: 10m\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Moderation.DefaultDeleteDelay != 10*time.Minute {
		t.Errorf("DefaultDeleteDelay = %v, want 10m", cfg.Moderation.DefaultDeleteDelay)
	}
	// Untouched keys keep their defaults.
	if cfg.Database.Path != DefaultDBPath {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, DefaultDBPath)
	}
}

func TestLoadConfigInvalidLogLevel(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "test-token")
	t.Setenv("BOT_TELEGRAM_OWNER_ID", "1000")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() succeeded with invalid log level, want validation error")
	}
}

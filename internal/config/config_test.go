package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsFillMissingSections(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  http_port: 9000\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.HTTPPort != 9000 {
		t.Fatalf("expected port 9000, got %d", cfg.Server.HTTPPort)
	}
	if cfg.Messages.PageSize != 50 || cfg.Messages.MaxLength != 1000 {
		t.Fatalf("unexpected message defaults %+v", cfg.Messages)
	}
	if cfg.Sessions.TTL != 24*time.Hour || cfg.Hangman.MaxIncorrect != 10 {
		t.Fatalf("unexpected defaults %+v %+v", cfg.Sessions, cfg.Hangman)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Paths.Database != "./data/flockr.db" {
		t.Fatalf("unexpected database path %q", cfg.Paths.Database)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FLOCKR_HTTP_PORT", "7070")
	t.Setenv("FLOCKR_SESSION_TTL", "90m")
	t.Setenv("FLOCKR_DICTIONARY", "/tmp/words.yaml")

	cfg, err := Load(writeConfig(t, "server:\n  http_port: 9000\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.HTTPPort != 7070 {
		t.Fatalf("expected env port 7070, got %d", cfg.Server.HTTPPort)
	}
	if cfg.Sessions.TTL != 90*time.Minute {
		t.Fatalf("expected 90m ttl, got %s", cfg.Sessions.TTL)
	}
	if cfg.Paths.Dictionary != "/tmp/words.yaml" {
		t.Fatalf("unexpected dictionary %q", cfg.Paths.Dictionary)
	}
}

func TestLoad_Invalid(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "hangman:\n  max_incorrect: 11\n")); err == nil {
		t.Fatalf("expected error for max_incorrect out of range")
	}
	t.Setenv("FLOCKR_PAGE_SIZE", "lots")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for non-numeric env override")
	}
}

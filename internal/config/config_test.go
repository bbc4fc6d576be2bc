package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(envDotenvPath, filepath.Join(t.TempDir(), "missing.env"))

	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.TeamWin.URL != defaultTeamWinURL {
		t.Fatalf("expected default team-win url %s, got %s", defaultTeamWinURL, cfg.TeamWin.URL)
	}
	if cfg.TeamWin.APIKey != "" {
		t.Fatalf("expected empty api key by default, got %s", cfg.TeamWin.APIKey)
	}
	if cfg.TeamWin.Timeout != 0 {
		t.Fatalf("expected no upstream timeout by default, got %s", cfg.TeamWin.Timeout)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Port != defaultMetricsPort {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected service name %s, got %s", defaultServiceName, cfg.Metrics.ServiceName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envDotenvPath, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv(envPort, "5000")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envLogFormat, "json")
	t.Setenv(envTeamWinURL, "http://example.com/api/chess/team-win")
	t.Setenv(envTeamWinKey, "secret-key")
	t.Setenv(envTeamWinTimeout, "15s")
	t.Setenv(envMetricsOn, "false")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("expected log overrides, got %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.TeamWin.URL != "http://example.com/api/chess/team-win" {
		t.Fatalf("expected url override, got %s", cfg.TeamWin.URL)
	}
	if cfg.TeamWin.APIKey != "secret-key" {
		t.Fatalf("expected api key override, got %s", cfg.TeamWin.APIKey)
	}
	if cfg.TeamWin.Timeout != 15*time.Second {
		t.Fatalf("expected timeout 15s, got %s", cfg.TeamWin.Timeout)
	}
	if cfg.Metrics.Enabled {
		t.Fatal("expected metrics disabled")
	}
}

func TestLoadInvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv(envDotenvPath, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv(envTeamWinTimeout, "not-a-duration")

	cfg := Load()

	if cfg.TeamWin.Timeout != defaultTeamWinTimeout {
		t.Fatalf("expected default timeout on invalid value, got %s", cfg.TeamWin.Timeout)
	}
}

func TestLoadReadsDotenvWithoutOverridingEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "TEAMWIN_API_KEY=from-file\nPORT=7000\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Setenv(envDotenvPath, path)
	t.Setenv(envPort, "5000")
	// Registered so t.Setenv restores the variable godotenv sets.
	t.Setenv(envTeamWinKey, "")
	os.Unsetenv(envTeamWinKey)

	cfg := Load()

	if cfg.TeamWin.APIKey != "from-file" {
		t.Fatalf("expected api key from dotenv, got %q", cfg.TeamWin.APIKey)
	}
	if cfg.Port != "5000" {
		t.Fatalf("expected environment to win over dotenv, got %s", cfg.Port)
	}
}

func TestLoadDotenvMissingFileIsNotAnError(t *testing.T) {
	if err := loadDotenv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("expected missing dotenv to be ignored, got %v", err)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"AGENT_CONFIG", "HTTP_PORT", "DATABASE_URL", "AGENT_MODE",
		"COHERE_BASE_URL", "COHERE_API_KEY", "COHERE_MODEL", "COHERE_TEMPERATURE",
		"PROVIDER_TIMEOUT_MS", "HISTORY_LIMIT", "AGENT_DEV_MODE",
		"AGENT_READ_ONLY", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.CohereModel != "command-r" {
		t.Errorf("expected default model command-r, got %s", cfg.CohereModel)
	}
	if cfg.HistoryLimit != 10 {
		t.Errorf("expected default history limit 10, got %d", cfg.HistoryLimit)
	}
	if cfg.ProviderTimeout != 30*time.Second {
		t.Errorf("expected default provider timeout 30s, got %s", cfg.ProviderTimeout)
	}
	if cfg.DevMode || cfg.ReadOnly {
		t.Errorf("expected dev mode and read only off by default")
	}
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	content := []byte("http_port: 9000\ncohere_model: command-r-plus\nhistory_limit: 4\nread_only: true\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("AGENT_CONFIG", path)
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("AGENT_MODE", "fallback")
	t.Setenv("COHERE_TEMPERATURE", "0.2")
	t.Setenv("HISTORY_LIMIT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// Environment beats the file.
	if cfg.HTTPPort != 9100 {
		t.Errorf("expected env port 9100 to win, got %d", cfg.HTTPPort)
	}
	// The file beats the defaults.
	if cfg.CohereModel != "command-r-plus" {
		t.Errorf("expected file model, got %s", cfg.CohereModel)
	}
	if cfg.HistoryLimit != 4 {
		t.Errorf("expected file history limit 4, got %d", cfg.HistoryLimit)
	}
	if !cfg.ReadOnly {
		t.Errorf("expected read_only from file")
	}
	if cfg.ProviderMode != ProviderModeFallback {
		t.Errorf("expected fallback mode from env, got %q", cfg.ProviderMode)
	}
	if cfg.Temperature != 0.2 {
		t.Errorf("expected temperature 0.2 from env, got %v", cfg.Temperature)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("AGENT_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

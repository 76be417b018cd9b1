// Package config provides configuration for the agent.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ProviderModeFallback forces the rule-based fallback provider regardless of
// API key presence.
const ProviderModeFallback = "fallback"

// Config holds the agent configuration.
type Config struct {
	// Server settings
	HTTPPort int `yaml:"http_port"`

	// Database
	DatabaseURL string `yaml:"database_url"`

	// Completion provider
	ProviderMode    string        `yaml:"provider_mode"`
	CohereBaseURL   string        `yaml:"cohere_base_url"`
	CohereAPIKey    string        `yaml:"cohere_api_key"`
	CohereModel     string        `yaml:"cohere_model"`
	Temperature     float64       `yaml:"temperature"`
	ProviderTimeout time.Duration `yaml:"-"`
	// ProviderTimeoutMs is the YAML-facing form of ProviderTimeout.
	ProviderTimeoutMs int `yaml:"provider_timeout_ms"`

	// Orchestration
	HistoryLimit int  `yaml:"history_limit"`
	DevMode      bool `yaml:"dev_mode"`
	ReadOnly     bool `yaml:"read_only"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Load builds the configuration from defaults, an optional YAML file named by
// AGENT_CONFIG, and finally environment variables. Environment always wins.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:          8080,
		DatabaseURL:       "file:taskchat.db?cache=shared&mode=rwc",
		CohereBaseURL:     "https://api.cohere.ai",
		CohereModel:       "command-r",
		Temperature:       0.7,
		ProviderTimeoutMs: 30000,
		HistoryLimit:      10,
		LogLevel:          "info",
	}

	if path := os.Getenv("AGENT_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.HTTPPort = getEnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.ProviderMode = getEnv("AGENT_MODE", cfg.ProviderMode)
	cfg.CohereBaseURL = getEnv("COHERE_BASE_URL", cfg.CohereBaseURL)
	cfg.CohereAPIKey = getEnv("COHERE_API_KEY", cfg.CohereAPIKey)
	cfg.CohereModel = getEnv("COHERE_MODEL", cfg.CohereModel)
	cfg.Temperature = getEnvFloat("COHERE_TEMPERATURE", cfg.Temperature)
	cfg.ProviderTimeoutMs = getEnvInt("PROVIDER_TIMEOUT_MS", cfg.ProviderTimeoutMs)
	cfg.HistoryLimit = getEnvInt("HISTORY_LIMIT", cfg.HistoryLimit)
	cfg.DevMode = getEnvBool("AGENT_DEV_MODE", cfg.DevMode)
	cfg.ReadOnly = getEnvBool("AGENT_READ_ONLY", cfg.ReadOnly)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.ProviderTimeout = time.Duration(cfg.ProviderTimeoutMs) * time.Millisecond
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

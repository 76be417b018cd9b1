package provider

import (
	"log"

	"github.com/taskchat/agent/internal/config"
)

// PlaceholderAPIKey is the well-known placeholder shipped in example configs.
// A key equal to it is treated the same as no key at all.
const PlaceholderAPIKey = "your-cohere-api-key-here"

// NewCompletionProvider selects the provider implementation from config:
// an explicit fallback mode, a missing key, or the placeholder key all select
// the rule-based fallback; anything else gets the live Cohere client.
func NewCompletionProvider(cfg *config.Config) CompletionProvider {
	if cfg.ProviderMode == config.ProviderModeFallback {
		log.Printf("INFO: AGENT_MODE=%s, using rule-based fallback provider", cfg.ProviderMode)
		return NewFallbackProvider()
	}
	if cfg.CohereAPIKey == "" || cfg.CohereAPIKey == PlaceholderAPIKey {
		log.Printf("INFO: no Cohere API key configured, using rule-based fallback provider")
		return NewFallbackProvider()
	}
	return NewCohereProvider(cfg.CohereBaseURL, cfg.CohereAPIKey, cfg.CohereModel, cfg.Temperature, cfg.ProviderTimeout)
}

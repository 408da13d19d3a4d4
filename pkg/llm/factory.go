package llm

import (
	"fmt"

	"go.uber.org/zap"
)

// New creates an LLM client for the configured provider. Returns (nil, nil)
// when no API key is configured: fallback research is optional and callers
// treat a nil client as "fallback disabled".
func New(cfg *Config, logger *zap.Logger) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}

	switch cfg.Provider {
	case "", "openai":
		return NewClient(cfg, logger)
	case "anthropic":
		return NewAnthropicClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

package advisor

import (
	"fmt"
	"log/slog"

	"github.com/hadikasem/AI-Financial-Advisor/internal/config"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// NewProviders builds the fallback chain from configuration: the configured
// provider first, then the other backend as secondary when it is usable.
// OpenAI needs an API key; Ollama is always a valid secondary.
func NewProviders(cfg *config.Config) ([]Provider, error) {
	ollama := NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel, cfg.AdvisorTimeout)

	var openai Provider
	if cfg.OpenAIAPIKey != "" {
		openai = NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AdvisorTimeout)
	}

	var providers []Provider
	switch cfg.LLMProvider {
	case ProviderOllama:
		providers = []Provider{ollama}
		if openai != nil {
			providers = append(providers, openai)
		}

	case ProviderOpenAI:
		if openai == nil {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when using the openai provider")
		}
		providers = []Provider{openai, ollama}

	default:
		return nil, fmt.Errorf("unknown llm provider: %s (supported: ollama, openai)", cfg.LLMProvider)
	}

	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	slog.Info("initialized llm providers", "chain", names)

	return providers, nil
}

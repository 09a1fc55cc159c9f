package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/kozaktomas/passport-photo/internal/config"
)

// ProviderNames lists the names accepted by NewProvider.
func ProviderNames() []string {
	return []string{"gemini", "openai"}
}

// NewProvider builds the named provider from configuration. An empty name
// selects the configured default.
func NewProvider(ctx context.Context, cfg *config.Config, name string) (Provider, error) {
	if name == "" {
		name = cfg.AI.Provider
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gemini":
		p, err := NewGeminiProvider(ctx, GeminiOptions{
			APIKey:          cfg.Gemini.APIKey,
			ImageModel:      cfg.Gemini.ImageModel,
			AnalysisModel:   cfg.Gemini.AnalysisModel,
			ImagePricing:    pricing(cfg, cfg.Gemini.ImageModel),
			AnalysisPricing: pricing(cfg, cfg.Gemini.AnalysisModel),
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	case "openai":
		p, err := NewOpenAIProvider(cfg.OpenAI.Token, cfg.OpenAI.Model, pricing(cfg, cfg.OpenAI.Model))
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q (use gemini or openai)", ErrUnknownProvider, name)
	}
}

func pricing(cfg *config.Config, model string) RequestPricing {
	p := cfg.GetModelPricing(model)
	return RequestPricing{Input: p.Input, Output: p.Output}
}

// Package providers selects the configured embedding provider and
// generative backend.
package providers

import (
	"context"
	"fmt"

	"promptcraft/internal/common/config"
	apperrors "promptcraft/internal/common/errors"
	"promptcraft/internal/providers/gemini"
	"promptcraft/internal/providers/openai"
)

// Provider embeds text and completes instructions against one vendor.
type Provider interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float64, error)
	Complete(ctx context.Context, system, instruction string) (string, error)
}

var (
	_ Provider = (*openai.Client)(nil)
	_ Provider = (*gemini.Client)(nil)
)

// New builds the provider named by cfg.Backend. It returns a
// CONFIGURATION_MISSING error when that backend has no API key.
func New(ctx context.Context, cfg config.ProvidersConfig) (Provider, error) {
	if !cfg.Credentialed() {
		return nil, apperrors.NewConfigurationMissingError(fmt.Sprintf("providers.%s.api_key", cfg.Backend))
	}

	switch cfg.Backend {
	case config.BackendOpenAI, "":
		return openai.NewClient(openai.Config{
			APIKey:         cfg.OpenAI.APIKey,
			ChatModel:      cfg.OpenAI.ChatModel,
			EmbeddingModel: cfg.OpenAI.EmbeddingModel,
			Temperature:    cfg.OpenAI.Temperature,
			BaseURL:        cfg.OpenAI.BaseURL,
			MaxRetries:     cfg.OpenAI.MaxRetries,
		})
	case config.BackendGemini:
		return gemini.NewClient(ctx, gemini.Config{
			APIKey:         cfg.Gemini.APIKey,
			ChatModel:      cfg.Gemini.ChatModel,
			EmbeddingModel: cfg.Gemini.EmbeddingModel,
			Temperature:    cfg.Gemini.Temperature,
		})
	default:
		return nil, fmt.Errorf("unknown provider backend %q", cfg.Backend)
	}
}

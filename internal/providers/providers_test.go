package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptcraft/internal/common/config"
	apperrors "promptcraft/internal/common/errors"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := New(ctx, config.ProvidersConfig{Backend: config.BackendOpenAI})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeConfigurationMissing, apperrors.CodeOf(err))
		assert.Contains(t, err.Error(), "providers.openai.api_key")
	})

	t.Run("key for the other backend", func(t *testing.T) {
		_, err := New(ctx, config.ProvidersConfig{
			Backend: config.BackendGemini,
			OpenAI:  config.OpenAIConfig{APIKey: "sk-test"},
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeConfigurationMissing, apperrors.CodeOf(err))
	})

	t.Run("openai", func(t *testing.T) {
		p, err := New(ctx, config.ProvidersConfig{
			Backend: config.BackendOpenAI,
			OpenAI:  config.OpenAIConfig{APIKey: "sk-test", EmbeddingModel: "text-embedding-3-small"},
		})
		require.NoError(t, err)
		assert.Equal(t, "openai:text-embedding-3-small", p.Name())
	})

	t.Run("gemini", func(t *testing.T) {
		p, err := New(ctx, config.ProvidersConfig{
			Backend: config.BackendGemini,
			Gemini:  config.GeminiConfig{APIKey: "g-test", EmbeddingModel: "gemini-embedding-001"},
		})
		require.NoError(t, err)
		assert.Equal(t, "gemini:gemini-embedding-001", p.Name())
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := New(ctx, config.ProvidersConfig{Backend: "llama", OpenAI: config.OpenAIConfig{APIKey: "sk"}})
		require.Error(t, err)
	})
}

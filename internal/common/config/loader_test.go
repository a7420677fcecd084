package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "DB_USER", "DB_PASSWORD", "REDIS_PASSWORD"} {
		t.Setenv(k, "")
	}
}

func TestLoadFromFile_Defaults(t *testing.T) {
	clearProviderEnv(t)
	path := writeConfig(t, "app:\n  name: promptcraft-test\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "promptcraft-test", cfg.App.Name)
	assert.Equal(t, ModeBackend, cfg.Pipeline.Mode)
	assert.Equal(t, "weighted", cfg.Pipeline.Scoring)
	assert.Equal(t, BackendOpenAI, cfg.Providers.Backend)
	assert.Equal(t, "gpt-4o-mini", cfg.Providers.OpenAI.ChatModel)
	assert.Equal(t, "text-embedding-3-small", cfg.Providers.OpenAI.EmbeddingModel)
	assert.Equal(t, 0.7, cfg.Providers.OpenAI.Temperature)
	assert.Equal(t, ":8000", cfg.Server.Address)
	assert.False(t, cfg.Providers.Credentialed())
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PROMPTCRAFT_TEST_DB", "prompts")

	path := writeConfig(t, `
database:
  postgres:
    enabled: true
    host: localhost
    database: ${PROMPTCRAFT_TEST_DB}
    user: app
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Providers.OpenAI.APIKey)
	assert.True(t, cfg.Providers.Credentialed())
	assert.Equal(t, "prompts", cfg.Database.Postgres.Database)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "host=localhost port=5432 user=app password= dbname=prompts sslmode=disable", cfg.Database.Postgres.GetDSN())
}

func TestLoadFromFile_Validation(t *testing.T) {
	clearProviderEnv(t)

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"bad mode", "pipeline:\n  mode: magic\n", "pipeline.mode"},
		{"bad backend", "providers:\n  backend: llama\n", "providers.backend"},
		{"camunda without broker", "camunda:\n  enabled: true\n", "camunda.broker_address"},
		{"postgres without host", "database:\n  postgres:\n    enabled: true\n", "database.postgres.host"},
		{"redis without address", "database:\n  redis:\n    enabled: true\n", "database.redis.address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCredentialed(t *testing.T) {
	p := ProvidersConfig{Backend: BackendGemini, OpenAI: OpenAIConfig{APIKey: "sk"}}
	assert.False(t, p.Credentialed())

	p.Gemini.APIKey = "g-key"
	assert.True(t, p.Credentialed())

	p = ProvidersConfig{Backend: BackendOpenAI, OpenAI: OpenAIConfig{APIKey: "   "}}
	assert.False(t, p.Credentialed())
}

func TestWorkerHelpers(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{"enhance-prompt": {Enabled: false, Timeout: 1000}}}

	assert.False(t, IsWorkerEnabled(cfg, "enhance-prompt"))
	assert.True(t, IsWorkerEnabled(cfg, "other"))
	assert.Equal(t, 1000, GetWorkerConfig(cfg, "enhance-prompt").Timeout)
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "other").Timeout)
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}

func TestLoadFromFile_ShippedConfig(t *testing.T) {
	clearProviderEnv(t)

	cfg, err := LoadFromFile(filepath.Join("..", "..", "..", "configs", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Providers.OpenAI.MaxRetries)
	assert.Equal(t, 0, cfg.Pipeline.Timeout)
	assert.Equal(t, 60000, cfg.Server.RequestTimeout)
	assert.Equal(t, 60000, GetWorkerConfig(cfg, "enhance-prompt").Timeout)
}

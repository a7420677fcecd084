// internal/common/config/config.go
package config

import (
	"fmt"
	"strings"
)

type Config struct {
	App       AppConfig               `mapstructure:"app"`
	Logging   LoggingConfig           `mapstructure:"logging"`
	Server    ServerConfig            `mapstructure:"server"`
	Pipeline  PipelineConfig          `mapstructure:"pipeline"`
	Providers ProvidersConfig         `mapstructure:"providers"`
	Camunda   CamundaConfig           `mapstructure:"camunda"`
	Database  DatabaseConfig          `mapstructure:"database"`
	Cache     CacheConfig             `mapstructure:"cache"`
	Workers   map[string]WorkerConfig `mapstructure:"workers"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Address        string `mapstructure:"address"`
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds, 0 disables
}

// Pipeline modes.
const (
	ModeBackend  = "backend"
	ModeTemplate = "template"
)

type PipelineConfig struct {
	Mode    string `mapstructure:"mode"`    // backend | template
	Scoring string `mapstructure:"scoring"` // weighted | keyword
	Timeout int    `mapstructure:"timeout"` // milliseconds, 0 disables
}

// Backend names.
const (
	BackendOpenAI = "openai"
	BackendGemini = "gemini"
)

type ProvidersConfig struct {
	Backend string       `mapstructure:"backend"`
	OpenAI  OpenAIConfig `mapstructure:"openai"`
	Gemini  GeminiConfig `mapstructure:"gemini"`
}

type OpenAIConfig struct {
	APIKey         string  `mapstructure:"api_key"`
	ChatModel      string  `mapstructure:"chat_model"`
	EmbeddingModel string  `mapstructure:"embedding_model"`
	Temperature    float64 `mapstructure:"temperature"`
	BaseURL        string  `mapstructure:"base_url"`
	MaxRetries     int     `mapstructure:"max_retries"`
}

type GeminiConfig struct {
	APIKey         string  `mapstructure:"api_key"`
	ChatModel      string  `mapstructure:"chat_model"`
	EmbeddingModel string  `mapstructure:"embedding_model"`
	Temperature    float64 `mapstructure:"temperature"`
}

// Credentialed reports whether the selected backend has an API key.
func (p ProvidersConfig) Credentialed() bool {
	switch p.Backend {
	case BackendGemini:
		return strings.TrimSpace(p.Gemini.APIKey) != ""
	default:
		return strings.TrimSpace(p.OpenAI.APIKey) != ""
	}
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	EmbeddingTTL int `mapstructure:"embedding_ttl"` // seconds, 0 keeps entries forever
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

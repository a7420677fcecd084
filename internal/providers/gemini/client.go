// Package gemini implements the embedding provider and generative backend on
// top of the Google GenAI SDK.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	apperrors "promptcraft/internal/common/errors"
)

const providerName = "gemini"

// Config holds the client settings.
type Config struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Temperature    float64
}

// Client calls GenerateContent and EmbedContent.
type Client struct {
	client         *genai.Client
	chatModel      string
	embeddingModel string
	temperature    float32
}

// NewClient builds a client for the Gemini API. No request is made.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, apperrors.NewConfigurationMissingError("providers.gemini.api_key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		client:         client,
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		temperature:    float32(cfg.Temperature),
	}, nil
}

// Name identifies the provider and embedding model.
func (c *Client) Name() string {
	return providerName + ":" + c.embeddingModel
}

// Complete sends instruction with system as the system instruction.
func (c *Client) Complete(ctx context.Context, system, instruction string) (string, error) {
	temperature := c.temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.chatModel,
		[]*genai.Content{genai.NewContentFromText(instruction, genai.RoleUser)}, cfg)
	if err != nil {
		return "", apperrors.NewProviderFailureError(providerName, err)
	}
	if result == nil {
		return "", apperrors.NewProviderFailureError(providerName, fmt.Errorf("empty response"))
	}
	return result.Text(), nil
}

// Embed returns the embedding vector of text, widened to float64.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	result, err := c.client.Models.EmbedContent(ctx, c.embeddingModel,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.EmbedContentConfig{TaskType: "SEMANTIC_SIMILARITY"},
	)
	if err != nil {
		return nil, apperrors.NewEmbeddingFailedError(providerName, err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, apperrors.NewEmbeddingFailedError(providerName, fmt.Errorf("no embeddings returned"))
	}
	return widen(result.Embeddings[0].Values), nil
}

func widen(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// Package openai implements the embedding provider and generative backend on
// top of the official OpenAI Go SDK.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	apperrors "promptcraft/internal/common/errors"
)

const providerName = "openai"

// Config holds the client settings.
type Config struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Temperature    float64
	BaseURL        string
	MaxRetries     int
}

// Client calls the chat completion and embedding endpoints.
type Client struct {
	client         openai.Client
	chatModel      string
	embeddingModel string
	temperature    float64
}

// NewClient builds a client. An empty API key is rejected.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, apperrors.NewConfigurationMissingError("providers.openai.api_key")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client:         openai.NewClient(opts...),
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		temperature:    cfg.Temperature,
	}, nil
}

// Name identifies the provider and embedding model, e.g. for cache keys.
func (c *Client) Name() string {
	return providerName + ":" + c.embeddingModel
}

// Complete sends the system message and instruction as one chat turn and
// returns the reply text.
func (c *Client) Complete(ctx context.Context, system, instruction string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(instruction),
		},
		Model:       openai.ChatModel(c.chatModel),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", apperrors.NewProviderFailureError(providerName, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", apperrors.NewProviderFailureError(providerName, fmt.Errorf("empty completion response"))
	}
	return resp.Choices[0].Message.Content, nil
}

// Embed returns the embedding vector of text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: []string{text}},
		Model: openai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return nil, apperrors.NewEmbeddingFailedError(providerName, err)
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, apperrors.NewEmbeddingFailedError(providerName, fmt.Errorf("no embeddings returned"))
	}
	return resp.Data[0].Embedding, nil
}

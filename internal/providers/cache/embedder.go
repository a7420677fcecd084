// Package cache persists query and corpus embeddings in Redis so restarts and
// sibling processes reuse them.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"promptcraft/internal/common/logger"
	"promptcraft/internal/common/metrics"
)

const keyPrefix = "promptcraft:emb:"

// Source is the embedder being cached. Name scopes the keys so vectors from
// different models never mix.
type Source interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float64, error)
}

// RedisEmbedder is a read-through cache in front of a Source. Redis failures
// are logged and never fail the lookup.
type RedisEmbedder struct {
	inner  Source
	client redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

// NewRedisEmbedder wraps inner. A zero ttl stores entries without expiry.
func NewRedisEmbedder(inner Source, client redis.Cmdable, ttl time.Duration, log logger.Logger) *RedisEmbedder {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &RedisEmbedder{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: log.Named("embedding-cache"),
	}
}

func (e *RedisEmbedder) Name() string {
	return e.inner.Name()
}

// Key returns the cache key for text.
func (e *RedisEmbedder) Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return keyPrefix + e.inner.Name() + ":" + hex.EncodeToString(sum[:])
}

func (e *RedisEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	key := e.Key(text)

	if vec, ok := e.lookup(ctx, key); ok {
		return vec, nil
	}

	vec, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vec) == 0 {
		return vec, nil
	}

	payload, err := json.Marshal(vec)
	if err != nil {
		return vec, nil
	}
	if err := e.client.Set(ctx, key, payload, e.ttl).Err(); err != nil {
		e.logger.Warn("Failed to store embedding", map[string]interface{}{
			"key":   key,
			"error": err,
		})
	}
	return vec, nil
}

func (e *RedisEmbedder) lookup(ctx context.Context, key string) ([]float64, bool) {
	raw, err := e.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.EmbeddingCacheRequests.WithLabelValues(metrics.CacheMiss).Inc()
			return nil, false
		}
		metrics.EmbeddingCacheRequests.WithLabelValues(metrics.CacheError).Inc()
		e.logger.Warn("Embedding cache lookup failed", map[string]interface{}{
			"key":   key,
			"error": err,
		})
		return nil, false
	}

	var vec []float64
	if err := json.Unmarshal(raw, &vec); err != nil || len(vec) == 0 {
		metrics.EmbeddingCacheRequests.WithLabelValues(metrics.CacheError).Inc()
		e.logger.Warn("Discarding corrupt embedding cache entry", map[string]interface{}{
			"key": key,
		})
		return nil, false
	}

	metrics.EmbeddingCacheRequests.WithLabelValues(metrics.CacheHit).Inc()
	return vec, true
}

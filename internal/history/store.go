// Package history stores pipeline results in the prompt_history table.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "promptcraft/internal/common/errors"
	"promptcraft/internal/prompt/stok"
)

// Schema creates the history table.
const Schema = `CREATE TABLE IF NOT EXISTS prompt_history (
	id UUID PRIMARY KEY,
	original_prompt TEXT NOT NULL,
	intent TEXT NOT NULL,
	sub_intent TEXT,
	confidence_score INTEGER NOT NULL,
	similarity_score DOUBLE PRECISION,
	is_vague BOOLEAN,
	result JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const (
	insertQuery = `INSERT INTO prompt_history (id, original_prompt, intent, sub_intent, confidence_score, similarity_score, is_vague, result)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	recentQuery = `SELECT id, result, created_at FROM prompt_history ORDER BY created_at DESC LIMIT $1`

	// MaxRecent bounds Recent.
	MaxRecent = 100
)

// Entry is one stored result.
type Entry struct {
	ID        string              `json:"id"`
	Result    stok.PipelineResult `json:"result"`
	CreatedAt time.Time           `json:"created_at"`
}

// Store reads and writes prompt_history.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create prompt_history: %w", err)
	}
	return nil
}

// Record inserts result under id, which must be a UUID.
func (s *Store) Record(ctx context.Context, id string, result stok.PipelineResult) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return apperrors.NewHistoryWriteFailedError(fmt.Errorf("invalid id %q: %w", id, err))
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return apperrors.NewHistoryWriteFailedError(err)
	}

	var (
		sub        sql.NullString
		similarity sql.NullFloat64
		vague      sql.NullBool
	)
	if result.SubIntent != "" {
		sub = sql.NullString{String: result.SubIntent, Valid: true}
	}
	if result.SimilarityScore != nil {
		similarity = sql.NullFloat64{Float64: *result.SimilarityScore, Valid: true}
	}
	if result.IsVague != nil {
		vague = sql.NullBool{Bool: *result.IsVague, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, insertQuery,
		parsed.String(),
		result.OriginalPrompt,
		result.Intent,
		sub,
		result.ConfidenceScore,
		similarity,
		vague,
		payload,
	)
	if err != nil {
		return apperrors.NewHistoryWriteFailedError(err)
	}
	return nil
}

// Recent returns the newest entries first. limit is clamped to [1, MaxRecent].
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > MaxRecent {
		limit = MaxRecent
	}

	rows, err := s.db.QueryContext(ctx, recentQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("query prompt_history: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e   Entry
			raw []byte
		)
		if err := rows.Scan(&e.ID, &raw, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prompt_history: %w", err)
		}
		if err := json.Unmarshal(raw, &e.Result); err != nil {
			return nil, fmt.Errorf("decode prompt_history %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prompt_history: %w", err)
	}
	return entries, nil
}

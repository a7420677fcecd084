package history

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "promptcraft/internal/common/errors"
	"promptcraft/internal/prompt/stok"
)

const testID = "3f1c2a9e-6b1d-4c55-9d7e-2f8b1a4c6e10"

func sampleResult() stok.PipelineResult {
	r := stok.PipelineResult{
		OriginalPrompt: "design a logo",
		EnhancedPrompt: "**Situation**\nx",
		StructuredPrompt: stok.StructuredPrompt{
			Situation: "s", Task: "t", Objective: "o", Knowledge: "k",
		},
		Intent:          "image",
		ConfidenceScore: 98,
		Suggestions:     []string{"Specify aspect ratio"},
	}
	r.WithSimilarity(stok.SimilarityResult{MaxScore: 0.42, IsVague: false})
	return r
}

func TestStore_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	result := sampleResult()
	payload, _ := json.Marshal(result)

	mock.ExpectExec(regexp.QuoteMeta(insertQuery)).
		WithArgs(testID, "design a logo", "image", nil, 98, 0.42, false, payload).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, NewStore(db).Record(context.Background(), testID, result))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Record_Errors(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		err = NewStore(db).Record(context.Background(), "not-a-uuid", sampleResult())
		assert.Equal(t, apperrors.ErrCodeHistoryWriteFailed, apperrors.CodeOf(err))
	})

	t.Run("exec failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(insertQuery)).WillReturnError(errors.New("connection refused"))

		err = NewStore(db).Record(context.Background(), testID, sampleResult())
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeHistoryWriteFailed, apperrors.CodeOf(err))
		assert.Contains(t, err.Error(), "connection refused")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_Recent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	result := sampleResult()
	payload, _ := json.Marshal(result)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "result", "created_at"}).
		AddRow(testID, payload, created)
	mock.ExpectQuery(regexp.QuoteMeta(recentQuery)).WithArgs(10).WillReturnRows(rows)

	entries, err := NewStore(db).Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testID, entries[0].ID)
	assert.Equal(t, created, entries[0].CreatedAt)
	assert.Equal(t, result, entries[0].Result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Recent_ClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(recentQuery)).WithArgs(MaxRecent).
		WillReturnRows(sqlmock.NewRows([]string{"id", "result", "created_at"}))

	entries, err := NewStore(db).Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS prompt_history")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewStore(db).EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderFailureError(t *testing.T) {
	cause := stderrors.New("401 unauthorized")
	err := NewProviderFailureError("openai", cause)

	assert.Equal(t, ErrCodeProviderFailure, err.Code)
	assert.True(t, err.Retryable)
	assert.Equal(t, "openai", err.Metadata["provider"])
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "401 unauthorized")
}

func TestNewProviderFailureError_Deadline(t *testing.T) {
	err := NewProviderFailureError("gemini", fmt.Errorf("post: %w", context.DeadlineExceeded))

	assert.Equal(t, ErrCodeBackendTimeout, err.Code)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAsAndCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("complete: %w", NewInvalidPromptError("blank"))

	stdErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeInvalidPrompt, stdErr.Code)
	assert.Equal(t, ErrCodeInvalidPrompt, CodeOf(wrapped))

	_, ok = As(stderrors.New("plain"))
	assert.False(t, ok)
	assert.Equal(t, ErrorCode(""), CodeOf(stderrors.New("plain")))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, ErrCodeInternal, Normalize(stderrors.New("boom")).Code)

	orig := NewHistoryWriteFailedError(stderrors.New("conn reset"))
	assert.Same(t, orig, Normalize(fmt.Errorf("record: %w", orig)))
}

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      string
		retries   int
		retryable bool
	}{
		{"provider failure", NewProviderFailureError("openai", stderrors.New("x")), "PROVIDER_FAILURE", 3, true},
		{"embedding maps to provider failure", NewEmbeddingFailedError("openai", stderrors.New("x")), "PROVIDER_FAILURE", 3, true},
		{"timeout", NewBackendTimeoutError("openai", context.DeadlineExceeded), "BACKEND_TIMEOUT", 1, true},
		{"invalid prompt", NewInvalidPromptError("blank"), "INVALID_PROMPT", 0, false},
		{"internal", NewInternalError(stderrors.New("x")), "INTERNAL_ERROR", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.code, bpmn.Code)
			assert.Equal(t, tt.retries, bpmn.Retries)
			assert.Equal(t, tt.retryable, bpmn.Retryable)

			vars := bpmn.ToErrorVariables()
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
			assert.Equal(t, tt.code, vars["errorCode"])
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeBackendTimeout))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidPrompt))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeHistoryWriteFailed))
	assert.Equal(t, "CONFIGURATION", GetErrorCategory(ErrCodeConfigurationMissing))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
	assert.False(t, IsRetryableErrorCode(ErrCodeParseIncomplete))
}

func TestWithMetadata(t *testing.T) {
	err := NewParseIncompleteError([]string{"TASK", "KNOWLEDGE"}).WithMetadata("reply_length", 42)

	assert.Equal(t, "TASK,KNOWLEDGE", err.Details)
	assert.Equal(t, 42, err.Metadata["reply_length"])
}

// Package errors provides the error codes shared by the pipeline, providers
// and the job worker, plus their mapping onto BPMN errors.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfigurationMissing ErrorCode = "CONFIGURATION_MISSING"
	ErrCodeProviderFailure      ErrorCode = "PROVIDER_FAILURE"
	ErrCodeEmbeddingFailed      ErrorCode = "EMBEDDING_FAILED"
	ErrCodeBackendTimeout       ErrorCode = "BACKEND_TIMEOUT"
	ErrCodeParseIncomplete      ErrorCode = "PARSE_INCOMPLETE"
	ErrCodeInvalidPrompt        ErrorCode = "INVALID_PROMPT"
	ErrCodeHistoryWriteFailed   ErrorCode = "HISTORY_WRITE_FAILED"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying error, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata sets one metadata key and returns e.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// As returns the first *StandardError in err's chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first *StandardError in err's chain, or ""
// when there is none.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := As(err); ok {
		return stdErr.Code
	}
	return ""
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewConfigurationMissingError reports a missing credential or setting.
func NewConfigurationMissingError(setting string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationMissing,
		Message:   "Required configuration is missing",
		Details:   fmt.Sprintf("setting: %s", setting),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderFailureError wraps a generative backend failure. Deadline and
// cancellation errors become BACKEND_TIMEOUT.
func NewProviderFailureError(provider string, err error) *StandardError {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewBackendTimeoutError(provider, err)
	}
	return &StandardError{
		Code:      ErrCodeProviderFailure,
		Message:   fmt.Sprintf("Provider '%s' request failed", provider),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewEmbeddingFailedError wraps an embedding provider failure.
func NewEmbeddingFailedError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingFailed,
		Message:   fmt.Sprintf("Provider '%s' embedding failed", provider),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewBackendTimeoutError reports a backend call that exceeded its deadline.
func NewBackendTimeoutError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBackendTimeout,
		Message:   fmt.Sprintf("Provider '%s' timed out", provider),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewParseIncompleteError lists the markers missing from a backend reply.
func NewParseIncompleteError(missing []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseIncomplete,
		Message:   "Backend reply is missing sections",
		Details:   strings.Join(missing, ","),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidPromptError rejects unusable input.
func NewInvalidPromptError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPrompt,
		Message:   "Prompt is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryWriteFailedError wraps a failed history insert.
func NewHistoryWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryWriteFailed,
		Message:   "Failed to record prompt history",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInternalError wraps anything unexpected.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 4. Retry Policy
// ==========================

// BPMNErrorMapping maps internal codes onto the error codes modeled in BPMN.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeConfigurationMissing: "CONFIGURATION_MISSING",
	ErrCodeProviderFailure:      "PROVIDER_FAILURE",
	ErrCodeEmbeddingFailed:      "PROVIDER_FAILURE",
	ErrCodeBackendTimeout:       "BACKEND_TIMEOUT",
	ErrCodeParseIncomplete:      "PARSE_INCOMPLETE",
	ErrCodeInvalidPrompt:        "INVALID_PROMPT",
	ErrCodeHistoryWriteFailed:   "HISTORY_WRITE_FAILED",
}

// GetRetryCount returns how many job retries a code is worth.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProviderFailure, ErrCodeEmbeddingFailed, ErrCodeHistoryWriteFailed:
		return 3
	case ErrCodeBackendTimeout:
		return 1
	default:
		return 0
	}
}

// ConvertToBPMNError maps a StandardError to the form thrown to the engine.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// IsRetryableErrorCode reports whether a code allows job retries.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for logging.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeConfigurationMissing:
		return "CONFIGURATION"
	case ErrCodeProviderFailure, ErrCodeEmbeddingFailed, ErrCodeBackendTimeout, ErrCodeParseIncomplete:
		return "AI"
	case ErrCodeInvalidPrompt:
		return "VALIDATION"
	case ErrCodeHistoryWriteFailed:
		return "DATABASE"
	default:
		return "OTHER"
	}
}

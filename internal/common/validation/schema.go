// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "promptcraft/internal/common/errors"
)

// PromptRequestSchema is the inbound contract shared by the HTTP API and the
// job worker: a required, non-blank prompt and an optional run mode.
const PromptRequestSchema = `{
	"type": "object",
	"properties": {
		"prompt": {
			"type": "string",
			"minLength": 1,
			"pattern": "\\S"
		},
		"mode": {
			"type": "string",
			"enum": ["", "backend", "template"]
		}
	},
	"required": ["prompt"]
}`

var promptRequestLoader = gojsonschema.NewStringLoader(PromptRequestSchema)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidatePromptRequest checks doc against PromptRequestSchema.
func ValidatePromptRequest(doc map[string]interface{}) (*ValidationResult, error) {
	return Validate(promptRequestLoader, doc)
}

// Validate checks doc against schema and collects every violation.
func Validate(schema gojsonschema.JSONLoader, doc map[string]interface{}) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "(root)" {
			if prop, ok := desc.Details()["property"].(string); ok {
				field = prop
			}
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, e := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return messages
}

func (vr *ValidationResult) HasErrors(field string) bool {
	for _, e := range vr.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil for a valid result and an INVALID_PROMPT error otherwise.
func (vr *ValidationResult) Err() error {
	if vr.Valid {
		return nil
	}
	return apperrors.NewInvalidPromptError(strings.Join(vr.GetErrorMessages(), "; "))
}

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "promptcraft/internal/common/errors"
)

func TestValidatePromptRequest(t *testing.T) {
	tests := []struct {
		name     string
		doc      map[string]interface{}
		valid    bool
		badField string
	}{
		{"prompt only", map[string]interface{}{"prompt": "build a calculator"}, true, ""},
		{"with mode", map[string]interface{}{"prompt": "design a logo", "mode": "template"}, true, ""},
		{"empty mode", map[string]interface{}{"prompt": "design a logo", "mode": ""}, true, ""},
		{"missing prompt", map[string]interface{}{}, false, "prompt"},
		{"empty prompt", map[string]interface{}{"prompt": ""}, false, "prompt"},
		{"blank prompt", map[string]interface{}{"prompt": "   \n\t"}, false, "prompt"},
		{"wrong type", map[string]interface{}{"prompt": 42}, false, "prompt"},
		{"unknown mode", map[string]interface{}{"prompt": "x", "mode": "magic"}, false, "mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidatePromptRequest(tt.doc)
			require.NoError(t, err)

			assert.Equal(t, tt.valid, result.Valid)
			if tt.valid {
				assert.NoError(t, result.Err())
				return
			}
			assert.True(t, result.HasErrors(tt.badField), result.GetErrorMessages())
			assert.Equal(t, apperrors.ErrCodeInvalidPrompt, apperrors.CodeOf(result.Err()))
		})
	}
}

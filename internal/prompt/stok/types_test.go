package stok

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredPrompt_Complete(t *testing.T) {
	tests := []struct {
		name     string
		input    StructuredPrompt
		expected StructuredPrompt
	}{
		{
			name:  "all empty",
			input: StructuredPrompt{},
			expected: StructuredPrompt{
				Situation: "Could not generate situation.",
				Task:      "Could not generate task.",
				Objective: "Could not generate objective.",
				Knowledge: "Could not generate knowledge.",
			},
		},
		{
			name:  "whitespace only counts as empty",
			input: StructuredPrompt{Situation: "  \n", Task: "t", Objective: "o", Knowledge: "k"},
			expected: StructuredPrompt{
				Situation: "Could not generate situation.",
				Task:      "t",
				Objective: "o",
				Knowledge: "k",
			},
		},
		{
			name:     "populated untouched",
			input:    StructuredPrompt{Situation: "s", Task: "t", Objective: "o", Knowledge: "k"},
			expected: StructuredPrompt{Situation: "s", Task: "t", Objective: "o", Knowledge: "k"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.Complete())
		})
	}
}

func TestStructuredPrompt_Render(t *testing.T) {
	s := StructuredPrompt{Situation: "S", Task: "T", Objective: "O", Knowledge: "K"}
	assert.Equal(t, "**Situation**\nS\n\n**Task**\nT\n\n**Objective**\nO\n\n**Knowledge**\nK", s.Render())
}

func TestCapSuggestions(t *testing.T) {
	in := []string{"a", "b", "c", "d"}
	out := CapSuggestions(in)
	assert.Equal(t, []string{"a", "b", "c"}, out)

	out[0] = "changed"
	assert.Equal(t, "a", in[0])

	assert.Empty(t, CapSuggestions(nil))
	assert.NotNil(t, CapSuggestions(nil))
}

func TestPipelineResult_WithSimilarity(t *testing.T) {
	var r PipelineResult
	r.WithSimilarity(SimilarityResult{MaxScore: 0.42, IsVague: false})

	if assert.NotNil(t, r.SimilarityScore) && assert.NotNil(t, r.IsVague) {
		assert.InDelta(t, 0.42, *r.SimilarityScore, 1e-9)
		assert.False(t, *r.IsVague)
	}
}

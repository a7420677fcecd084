// internal/prompt/stok/types.go
package stok

import (
	"fmt"
	"strings"
)

// Field names used in placeholders and metrics labels.
const (
	FieldSituation = "situation"
	FieldTask      = "task"
	FieldObjective = "objective"
	FieldKnowledge = "knowledge"
)

// Placeholder returns the text used when a STOK field could not be produced.
func Placeholder(field string) string {
	return fmt.Sprintf("Could not generate %s.", field)
}

// StructuredPrompt is the Situation/Task/Objective/Knowledge representation.
type StructuredPrompt struct {
	Situation string `json:"situation"`
	Task      string `json:"task"`
	Objective string `json:"objective"`
	Knowledge string `json:"knowledge"`
}

// Complete returns a copy where every blank field holds its placeholder.
func (s StructuredPrompt) Complete() StructuredPrompt {
	return StructuredPrompt{
		Situation: orPlaceholder(s.Situation, FieldSituation),
		Task:      orPlaceholder(s.Task, FieldTask),
		Objective: orPlaceholder(s.Objective, FieldObjective),
		Knowledge: orPlaceholder(s.Knowledge, FieldKnowledge),
	}
}

// Render joins the four sections into the enhanced prompt text.
func (s StructuredPrompt) Render() string {
	var b strings.Builder
	b.WriteString("**Situation**\n")
	b.WriteString(s.Situation)
	b.WriteString("\n\n**Task**\n")
	b.WriteString(s.Task)
	b.WriteString("\n\n**Objective**\n")
	b.WriteString(s.Objective)
	b.WriteString("\n\n**Knowledge**\n")
	b.WriteString(s.Knowledge)
	return b.String()
}

func orPlaceholder(value, field string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder(field)
	}
	return value
}

// ScoredIntent is the outcome of lexical intent classification.
type ScoredIntent struct {
	Primary    string  `json:"primary"`
	Sub        string  `json:"sub"`
	Confidence float64 `json:"confidence"`
}

// QueryContext carries auxiliary signals extracted from the raw query.
// Stakeholder is empty when no recipient was mentioned.
type QueryContext struct {
	HasData     bool   `json:"has_data"`
	NeedsData   bool   `json:"needs_data"`
	Stakeholder string `json:"stakeholder,omitempty"`
	QueryLength int    `json:"query_length"`
}

// SimilarityResult is the vagueness verdict for a query.
type SimilarityResult struct {
	MaxScore float64 `json:"max_score"`
	IsVague  bool    `json:"is_vague"`
}

// MaxSuggestions caps every suggestion list returned to callers.
const MaxSuggestions = 3

// PipelineResult is returned for every query, including failures.
// SimilarityScore and IsVague are nil when no vagueness check ran.
type PipelineResult struct {
	OriginalPrompt   string           `json:"original_prompt"`
	EnhancedPrompt   string           `json:"enhanced_prompt"`
	StructuredPrompt StructuredPrompt `json:"structured_prompt"`
	Intent           string           `json:"intent"`
	SubIntent        string           `json:"sub_intent,omitempty"`
	ConfidenceScore  int              `json:"confidence_score"`
	SimilarityScore  *float64         `json:"similarity_score,omitempty"`
	IsVague          *bool            `json:"is_vague,omitempty"`
	Suggestions      []string         `json:"suggestions"`
	Context          *QueryContext    `json:"context,omitempty"`
}

// WithSimilarity sets both optional vagueness fields.
func (r *PipelineResult) WithSimilarity(sim SimilarityResult) {
	score := sim.MaxScore
	vague := sim.IsVague
	r.SimilarityScore = &score
	r.IsVague = &vague
}

// CapSuggestions trims a list to MaxSuggestions without aliasing the input.
func CapSuggestions(in []string) []string {
	n := len(in)
	if n > MaxSuggestions {
		n = MaxSuggestions
	}
	out := make([]string, n)
	copy(out, in[:n])
	return out
}

// internal/prompt/templates/generator.go
package templates

import (
	"strings"

	"promptcraft/internal/prompt/intent"
	"promptcraft/internal/prompt/stok"
)

// FillerSuggestion pads suggestion lists that came out too short.
const FillerSuggestion = "Add constraints or limitations"

const minSuggestions = 2

// Generator builds STOK prompts from an intent classification without any
// network access. The zero value is ready to use and safe for concurrent use.
type Generator struct{}

// NewGenerator returns a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produces the structured prompt and up to three suggestions for a
// classified query. The result depends only on its arguments.
func (g *Generator) Generate(primary, sub string, qctx stok.QueryContext, query string) (stok.StructuredPrompt, []string) {
	q := strings.ToLower(query)

	var (
		prompt      stok.StructuredPrompt
		suggestions []string
	)

	switch primary {
	case intent.Coding:
		prompt = codingPrompt(sub, query, q)
		suggestions = codingSuggestions(sub, q)
	case intent.Image:
		prompt = imagePrompt(query)
		suggestions = imageSuggestions(q)
	case intent.Writing:
		prompt = writingPrompt(query)
		suggestions = writingSuggestions(q)
	case intent.Marketing:
		prompt = marketingPrompt(sub, qctx, query)
		suggestions = marketingSuggestions(sub, qctx, q)
	default:
		prompt = generalPrompt(query)
		suggestions = generalSuggestions(q)
	}

	if len(suggestions) < minSuggestions {
		suggestions = append(suggestions, FillerSuggestion)
	}
	return prompt.Complete(), stok.CapSuggestions(suggestions)
}

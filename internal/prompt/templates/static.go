// internal/prompt/templates/static.go
package templates

import (
	"fmt"

	"promptcraft/internal/prompt/stok"
)

func imagePrompt(query string) stok.StructuredPrompt {
	return stok.StructuredPrompt{
		Situation: fmt.Sprintf("You are creating a visual for the request: %q.", query),
		Task:      "Write a detailed image-generation prompt that describes the subject, composition, lighting and color palette.",
		Objective: "Produce an image that matches the intended subject and mood with high visual quality.",
		Knowledge: `- State the aspect ratio and resolution
- Name an artistic style, medium or reference
- Describe lighting and atmosphere
- List elements that must not appear`,
	}
}

func writingPrompt(query string) stok.StructuredPrompt {
	return stok.StructuredPrompt{
		Situation: fmt.Sprintf("You are writing a piece for the request: %q.", query),
		Task:      "Draft the text with a clear structure: an engaging opening, a well-organized body and a concise conclusion.",
		Objective: "Deliver polished writing that fits its audience and achieves its purpose.",
		Knowledge: `- Match the tone to the intended readers
- Keep paragraphs focused on one idea
- Support claims with examples or sources
- Respect any length or format requirements`,
	}
}

func generalPrompt(query string) stok.StructuredPrompt {
	return stok.StructuredPrompt{
		Situation: fmt.Sprintf("You have a request that needs a clear, well-reasoned answer: %q.", query),
		Task:      "Understand the request, ask for any missing details and provide a complete response.",
		Objective: "Give an accurate, actionable answer that directly addresses the request.",
		Knowledge: `- Background on what you are trying to achieve
- Any constraints such as time, budget or tools
- The format you want the answer in`,
	}
}

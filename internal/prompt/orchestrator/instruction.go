// internal/prompt/orchestrator/instruction.go
package orchestrator

import (
	"fmt"
	"strings"
)

// SystemMessage accompanies every backend instruction.
const SystemMessage = "You are an expert prompt engineer."

const vagueNote = "NOTE: This prompt seems VAGUE or low-quality based on semantic analysis. Please provide extra guidance on how to make it specific."

const instructionBody = `Create an action-oriented STOK (Situation, Task, Objective, Knowledge) framework that helps them accomplish this goal.

IMPORTANT GUIDELINES:
- Situation: Define the ACTUAL scenario they are working in (NOT a meta-analysis of their request)
- Task: Provide specific, actionable instructions for what needs to be done
- Objective: Define clear success criteria for the output
- Knowledge: List required information, best practices, or context needed
- Use proper markdown formatting with dashes (-) for bullet points
- Make content specific to their request, not generic

1. Identify the Intent (Coding, Image, Writing, Marketing, or General).
2. Create the STOK framework.
3. Generate 3 specific, actionable suggestions.

Output strictly in this format (no markdown code blocks, just the text sections separated by special markers):

[INTENT]
(The intent here)

[SITUATION]
(Define the ACTUAL working scenario - e.g., "You are writing a blog post for an audience interested in AI technology...")

[TASK]
(Specific instructions with proper markdown bullet points using dashes)

[OBJECTIVE]
(Clear success criteria)

[KNOWLEDGE]
(Required information, best practices - use proper markdown bullet points with dashes)

[SUGGESTIONS]
- (Suggestion 1)
- (Suggestion 2)
- (Suggestion 3)
`

// BuildInstruction renders the backend instruction for query. A vague query
// gets an extra note asking for disambiguation guidance.
func BuildInstruction(query string, isVague bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert prompt engineer. The user wants: \"%s\"\n", query)
	if isVague {
		b.WriteString(vagueNote)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(instructionBody)
	return b.String()
}

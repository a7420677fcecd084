// internal/prompt/templates/coding.go
package templates

import (
	"fmt"
	"strings"

	"promptcraft/internal/prompt/stok"
)

type artifact struct {
	keyword      string
	requirements []string
}

// Ordered: the first artifact named in the query supplies the requirements.
var artifacts = []artifact{
	{"calculator", []string{
		"Support addition, subtraction, multiplication and division",
		"Respect operator precedence and parentheses",
		"Handle division by zero and invalid input gracefully",
		"Show the entered expression alongside the result",
	}},
	{"todo", []string{
		"Add, edit, complete and delete tasks",
		"Persist tasks between sessions",
		"Filter tasks by status",
		"Show a clear empty state when there are no tasks",
	}},
	{"api", []string{
		"Define resource endpoints with appropriate HTTP methods",
		"Validate request payloads and return meaningful status codes",
		"Return consistent JSON error responses",
		"Document every endpoint with an example request",
	}},
	{"scrape", []string{
		"Fetch pages with rate limiting and a descriptive user agent",
		"Extract the target fields with selectors that tolerate layout changes",
		"Follow pagination until no further pages remain",
		"Export the collected records to CSV or JSON",
	}},
}

var genericRequirements = []string{
	"Implement the core functionality described in the request",
	"Handle edge cases and invalid input",
	"Keep the code modular and readable",
	"Include brief usage instructions",
}

type knowledgeRule struct {
	keywords []string
	lines    []string
}

// Every matching rule contributes its lines, in this order.
var knowledgeRules = []knowledgeRule{
	{[]string{"python"}, []string{
		"Follow PEP 8, use type hints and write docstrings for public functions",
	}},
	{[]string{"javascript", "react", "typescript"}, []string{
		"Use modern ES modules and functional components with hooks where a UI is involved",
	}},
	{[]string{"calculator"}, []string{
		"Parse expressions with a shunting-yard or recursive-descent parser instead of eval",
		"Use decimal arithmetic where floating-point precision matters",
	}},
	{[]string{"api"}, []string{
		"Follow HTTP semantics for status codes and idempotent methods",
		"Protect endpoints with authentication such as API keys or OAuth",
	}},
	{[]string{"database", "sql"}, []string{
		"Use parameterized queries and index frequently filtered columns",
	}},
	{[]string{"test"}, []string{
		"Cover the main paths and edge cases with unit tests",
	}},
}

const genericKnowledge = "Follow the idiomatic conventions and best practices of the chosen language"

func codingRequirements(q string) []string {
	for _, a := range artifacts {
		if strings.Contains(q, a.keyword) {
			return a.requirements
		}
	}
	return genericRequirements
}

func codingKnowledge(q string) []string {
	var lines []string
	for _, r := range knowledgeRules {
		if containsAny(q, r.keywords) {
			lines = append(lines, r.lines...)
		}
	}
	if len(lines) == 0 {
		lines = []string{genericKnowledge}
	}
	return lines
}

func codingSituation(sub, query string) string {
	switch sub {
	case "debugging":
		return fmt.Sprintf("You are troubleshooting a problem in existing code: %q.", query)
	case "api_development":
		return fmt.Sprintf("You are designing and implementing an API for the request: %q.", query)
	case "web_development":
		return fmt.Sprintf("You are building a web application for the request: %q.", query)
	default:
		return fmt.Sprintf("You are developing software for the request: %q.", query)
	}
}

func codingPrompt(sub, query, q string) stok.StructuredPrompt {
	task := "Write complete, working code that fulfils the request. Requirements:\n" + bulletList(codingRequirements(q))
	if sub == "debugging" {
		task = "Find the root cause of the problem and provide corrected code with an explanation of the fix. Requirements:\n" +
			bulletList([]string{
				"Reproduce the failure from the described symptoms",
				"Explain why the error occurs",
				"Show the minimal change that fixes it",
				"Suggest how to prevent regressions",
			})
	}
	return stok.StructuredPrompt{
		Situation: codingSituation(sub, query),
		Task:      task,
		Objective: "Deliver working, well-structured code that runs without modification and is easy to extend.",
		Knowledge: bulletList(codingKnowledge(q)),
	}
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + it
	}
	return strings.Join(lines, "\n")
}

func containsAny(q string, words []string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

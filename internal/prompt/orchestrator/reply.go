// internal/prompt/orchestrator/reply.go
package orchestrator

import (
	"regexp"
	"strings"

	"promptcraft/internal/prompt/stok"
)

// Section markers of the backend reply, in the order they must appear.
const (
	MarkerIntent      = "[INTENT]"
	MarkerSituation   = "[SITUATION]"
	MarkerTask        = "[TASK]"
	MarkerObjective   = "[OBJECTIVE]"
	MarkerKnowledge   = "[KNOWLEDGE]"
	MarkerSuggestions = "[SUGGESTIONS]"
)

// Section names reported in Reply.Missing.
const (
	SectionIntent      = "intent"
	SectionSuggestions = "suggestions"
)

type section struct {
	name    string
	pattern *regexp.Regexp
}

// Each body runs from its marker up to the next marker in order.
var sections = []section{
	{SectionIntent, between(MarkerIntent, MarkerSituation)},
	{stok.FieldSituation, between(MarkerSituation, MarkerTask)},
	{stok.FieldTask, between(MarkerTask, MarkerObjective)},
	{stok.FieldObjective, between(MarkerObjective, MarkerKnowledge)},
	{stok.FieldKnowledge, between(MarkerKnowledge, MarkerSuggestions)},
}

var suggestionsPattern = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(MarkerSuggestions) + `\s*(.*)`)

func between(start, end string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)` + regexp.QuoteMeta(start) + `\s*(.*?)\s*` + regexp.QuoteMeta(end))
}

// Reply is a parsed backend reply. Prompt always has four non-empty fields;
// sections that could not be extracted are listed in Missing.
type Reply struct {
	Intent      string
	Prompt      stok.StructuredPrompt
	Suggestions []string
	Missing     []string
}

// Partial reports whether any section was missing.
func (r Reply) Partial() bool {
	return len(r.Missing) > 0
}

// ParseReply extracts the sections from text. It never fails: absent STOK
// fields hold their placeholder, an absent intent is empty and absent
// suggestions are nil.
func ParseReply(text string) Reply {
	var reply Reply
	values := make(map[string]string, len(sections))

	for _, s := range sections {
		m := s.pattern.FindStringSubmatch(text)
		if m == nil || strings.TrimSpace(m[1]) == "" {
			reply.Missing = append(reply.Missing, s.name)
			continue
		}
		values[s.name] = strings.TrimSpace(m[1])
	}

	reply.Intent = values[SectionIntent]
	reply.Prompt = stok.StructuredPrompt{
		Situation: values[stok.FieldSituation],
		Task:      values[stok.FieldTask],
		Objective: values[stok.FieldObjective],
		Knowledge: values[stok.FieldKnowledge],
	}.Complete()

	if m := suggestionsPattern.FindStringSubmatch(text); m != nil {
		reply.Suggestions = cleanSuggestions(m[1])
	}
	if len(reply.Suggestions) == 0 {
		reply.Missing = append(reply.Missing, SectionSuggestions)
	}

	return reply
}

func cleanSuggestions(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		s := strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "- "))
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == stok.MaxSuggestions {
			break
		}
	}
	return out
}

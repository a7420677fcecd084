// internal/prompt/templates/suggestions.go
package templates

import (
	"regexp"
	"strings"

	"promptcraft/internal/prompt/intent"
	"promptcraft/internal/prompt/stok"
)

var (
	languagePattern = regexp.MustCompile(`\b(python|javascript|typescript|java|golang|go|rust|ruby|php|swift|kotlin|scala|sql|html|css|react)\b`)
	pythonPattern   = regexp.MustCompile(`\bpython\b`)
	uiPattern       = regexp.MustCompile(`\b(cli|command[- ]line|terminal|console|gui|desktop|web|browser|mobile|tkinter|ui)\b`)
	aspectPattern   = regexp.MustCompile(`\b\d+\s*:\s*\d+\b|aspect ratio|landscape|portrait|square|widescreen`)
	stylePattern    = regexp.MustCompile(`style|realistic|cartoon|watercolor|oil painting|anime|minimalist|3d|cinematic|illustration|sketch`)
	budgetPattern   = regexp.MustCompile(`budget|\$\s*\d|spend|cost`)
	competitorWords = []string{"competitor", "competition", "rival", "versus", " vs "}
	tonePattern     = regexp.MustCompile(`tone|formal|casual|friendly|persuasive|professional|humorous`)
	lengthPattern   = regexp.MustCompile(`\d+\s*(words|pages|paragraphs|sentences)|length|short|long`)
	audiencePattern = regexp.MustCompile(`audience|readers|for (beginners|experts|kids|children|students|developers|customers)`)
)

func hasLanguage(q string) bool {
	return languagePattern.MatchString(q) || strings.Contains(q, "c++") || strings.Contains(q, "c#")
}

func isInteractiveApp(sub string) bool {
	return sub == "application" || sub == "web_development"
}

func codingSuggestions(sub, q string) []string {
	var out []string
	if !hasLanguage(q) {
		out = append(out, "Specify the programming language (e.g., Python, JavaScript)")
	} else if pythonPattern.MatchString(q) {
		out = append(out, "Mention the Python version and any libraries you want to use")
	}
	if isInteractiveApp(sub) && !uiPattern.MatchString(q) {
		out = append(out, "Specify the interface: command line, desktop GUI or web")
	}
	if !strings.Contains(q, "test") {
		out = append(out, "Ask for unit tests to verify the behavior")
	}
	return out
}

func imageSuggestions(q string) []string {
	var out []string
	if !aspectPattern.MatchString(q) {
		out = append(out, "Specify an aspect ratio (e.g., 16:9 or 1:1)")
	}
	if !stylePattern.MatchString(q) {
		out = append(out, "Describe the artistic style or mood")
	}
	return out
}

func writingSuggestions(q string) []string {
	var out []string
	if !tonePattern.MatchString(q) {
		out = append(out, "Specify the tone (formal, casual or persuasive)")
	}
	if !lengthPattern.MatchString(q) {
		out = append(out, "State the desired length")
	}
	if !audiencePattern.MatchString(q) {
		out = append(out, "Describe the target audience")
	}
	return out
}

func marketingSuggestions(sub string, qctx stok.QueryContext, q string) []string {
	var out []string
	if sub == intent.SubReporting {
		if !qctx.HasData {
			out = append(out, "Attach the performance data you want reported")
		}
		if qctx.Stakeholder == "" {
			out = append(out, "Say who will read the report (manager, client, team or executive)")
		}
	}
	if !budgetPattern.MatchString(q) {
		out = append(out, "Include your budget range")
	}
	if !containsAny(q, competitorWords) {
		out = append(out, "Mention your main competitors")
	}
	return out
}

func generalSuggestions(string) []string {
	return []string{"Add context about what you want to achieve"}
}

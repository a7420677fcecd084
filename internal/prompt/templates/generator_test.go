package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptcraft/internal/prompt/detect"
	"promptcraft/internal/prompt/intent"
	"promptcraft/internal/prompt/stok"
)

// ==========================
// Reporting
// ==========================

func TestGenerate_ReportingMetaManagerWithData(t *testing.T) {
	query := "create a report from this data for meta ads so I can send it to my manager"
	qctx := detect.Detect(query)

	prompt, suggestions := NewGenerator().Generate(intent.Marketing, intent.SubReporting, qctx, query)

	assert.Contains(t, prompt.Situation, "Meta Ads performance data to your manager")
	assert.Contains(t, prompt.Objective, "Focus on: ROI, budget efficiency, key insights, recommendations.")
	assert.Contains(t, prompt.Knowledge, "  • ROAS (Return on Ad Spend)")
	assert.Contains(t, prompt.Knowledge, "executive summary with highlights")
	assert.Contains(t, prompt.Knowledge, "Please share the data now")
	assert.Equal(t, []string{"Include your budget range", "Mention your main competitors"}, suggestions)
}

func TestGenerate_ReportingWithoutData(t *testing.T) {
	query := "analyze google ads performance and make a report for my client"
	qctx := detect.Detect(query)
	require.Equal(t, "client", qctx.Stakeholder)

	prompt, suggestions := NewGenerator().Generate(intent.Marketing, intent.SubReporting, qctx, query)

	assert.Contains(t, prompt.Situation, "Google Ads")
	assert.Contains(t, prompt.Objective, "results, value delivered, goal achievement, next steps")
	assert.Contains(t, prompt.Knowledge, "  • Quality Score")
	assert.Contains(t, prompt.Knowledge, "actionable recommendations your client needs to see.")
	assert.Equal(t, "Attach the performance data you want reported", suggestions[0])
	assert.Len(t, suggestions, 3)
}

func TestGenerate_ReportingStakeholderDefaults(t *testing.T) {
	g := NewGenerator()

	prompt, _ := g.Generate(intent.Marketing, intent.SubReporting, stok.QueryContext{}, "summarize ad results")
	assert.Contains(t, prompt.Situation, "General Ads performance data to your manager")

	prompt, _ = g.Generate(intent.Marketing, intent.SubReporting, stok.QueryContext{Stakeholder: "board"}, "summarize ad results")
	assert.Contains(t, prompt.Situation, "to your board")
	assert.Contains(t, prompt.Objective, "ROI, budget efficiency")
}

// ==========================
// Other marketing sub-intents
// ==========================

func TestGenerate_MarketingSubIntents(t *testing.T) {
	g := NewGenerator()

	tests := []struct {
		name     string
		sub      string
		query    string
		contains string
	}{
		{"strategy", intent.SubStrategy, "best marketing strategy for a SaaS launch", "comprehensive marketing strategy"},
		{"audience", intent.SubAudienceTargeting, "who should be my target audience for fitness supplements", "'who should be my fitness supplements'"},
		{"campaign", intent.SubCampaignCreation, "launch tiktok ads for sneakers", "Tiktok advertising campaign"},
		{"optimization", intent.SubOptimization, "reduce my cpa", "current advertising campaign is running"},
		{"generic", "", "marketing help", "marketing-related request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, _ := g.Generate(intent.Marketing, tt.sub, detect.Detect(tt.query), tt.query)
			assert.Contains(t, prompt.Situation, tt.contains)
		})
	}
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		query    string
		expected string
	}{
		{"my Facebook campaign", "meta"},
		{"adwords spend", "google"},
		{"LinkedIn Ads leads", "linkedin"},
		{"tiktok advertising", "tiktok"},
		{"twitter ads", "twitter"},
		{"facebook and google ads together", "meta"},
		{"newsletter", PlatformGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.query))
		})
	}
}

func TestPlatformMetrics(t *testing.T) {
	assert.Equal(t, PlatformMetrics(PlatformGeneral), PlatformMetrics("tiktok"))
	assert.Contains(t, PlatformMetrics("linkedin"), "Cost Per Lead")

	m := PlatformMetrics("meta")
	m[0] = "changed"
	assert.Equal(t, "Impressions", PlatformMetrics("meta")[0])
}

// ==========================
// Coding
// ==========================

func TestGenerate_CodingCalculatorPython(t *testing.T) {
	query := "build a calculator app in python"

	prompt, suggestions := NewGenerator().Generate(intent.Coding, "application", detect.Detect(query), query)

	assert.Contains(t, prompt.Task, "- Respect operator precedence and parentheses")
	assert.Contains(t, prompt.Knowledge, "PEP 8")
	assert.Contains(t, prompt.Knowledge, "shunting-yard")
	assert.Equal(t, []string{
		"Mention the Python version and any libraries you want to use",
		"Specify the interface: command line, desktop GUI or web",
		"Ask for unit tests to verify the behavior",
	}, suggestions)
}

func TestGenerate_CodingGeneric(t *testing.T) {
	query := "write a function that merges overlapping intervals with tests"

	prompt, suggestions := NewGenerator().Generate(intent.Coding, "", detect.Detect(query), query)

	assert.Contains(t, prompt.Task, "- Handle edge cases and invalid input")
	assert.Equal(t, "- Cover the main paths and edge cases with unit tests", prompt.Knowledge)
	assert.Equal(t, []string{"Specify the programming language (e.g., Python, JavaScript)", FillerSuggestion}, suggestions)
}

func TestCodingKnowledge_Fallback(t *testing.T) {
	assert.Equal(t, []string{genericKnowledge}, codingKnowledge("make something neat"))
	assert.Len(t, codingKnowledge("python api with sql database"), 4)
}

func TestGenerate_Debugging(t *testing.T) {
	query := "fix this error in my django app"
	prompt, _ := NewGenerator().Generate(intent.Coding, "debugging", detect.Detect(query), query)

	assert.Contains(t, prompt.Situation, "troubleshooting")
	assert.Contains(t, prompt.Task, "root cause")
}

// ==========================
// Static templates
// ==========================

func TestGenerate_StaticTemplatesEmbedQuery(t *testing.T) {
	g := NewGenerator()
	query := "a cyberpunk city at night"

	for _, primary := range []string{intent.Image, intent.Writing, intent.General, "unknown"} {
		t.Run(primary, func(t *testing.T) {
			prompt, _ := g.Generate(primary, "", detect.Detect(query), query)
			assert.Contains(t, prompt.Situation, query)
		})
	}
}

func TestGenerate_ImageSuggestions(t *testing.T) {
	g := NewGenerator()

	_, suggestions := g.Generate(intent.Image, "creative", stok.QueryContext{}, "a cyberpunk city at night")
	assert.Equal(t, []string{"Specify an aspect ratio (e.g., 16:9 or 1:1)", "Describe the artistic style or mood"}, suggestions)

	_, suggestions = g.Generate(intent.Image, "creative", stok.QueryContext{}, "a 16:9 watercolor of a harbor")
	assert.Equal(t, []string{FillerSuggestion}, suggestions)
}

func TestGenerate_GeneralSuggestions(t *testing.T) {
	_, suggestions := NewGenerator().Generate(intent.General, intent.General, stok.QueryContext{}, "do it")
	assert.Equal(t, []string{"Add context about what you want to achieve", FillerSuggestion}, suggestions)
}

// ==========================
// Properties
// ==========================

func TestGenerate_AlwaysCompleteAndCapped(t *testing.T) {
	g := NewGenerator()
	scorer := intent.NewScorer(nil, intent.Weighted)

	queries := []string{
		"",
		"do it",
		"create a report from this data for meta ads so I can send it to my manager",
		"how do I optimize my facebook ad campaign to reduce CPA",
		"who should be my target audience for fitness supplements",
		"build a todo app",
		"write a blog post about sleep",
		"create a 4k photo of a mountain",
		"design a logo for a bakery",
		"write a story about a dragon",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			cls := scorer.Classify(q)
			prompt, suggestions := g.Generate(cls.Primary, cls.Sub, detect.Detect(q), q)

			for _, field := range []string{prompt.Situation, prompt.Task, prompt.Objective, prompt.Knowledge} {
				assert.NotEmpty(t, strings.TrimSpace(field))
			}
			assert.LessOrEqual(t, len(suggestions), stok.MaxSuggestions)
		})
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	g := NewGenerator()
	query := "create a report from this data for meta ads so I can send it to my manager"
	qctx := detect.Detect(query)

	p1, s1 := g.Generate(intent.Marketing, intent.SubReporting, qctx, query)
	p2, s2 := g.Generate(intent.Marketing, intent.SubReporting, qctx, query)

	assert.Equal(t, p1, p2)
	assert.Equal(t, s1, s2)
}

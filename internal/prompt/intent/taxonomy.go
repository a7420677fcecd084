// internal/prompt/intent/taxonomy.go
package intent

// Signals are the lexical cues of one taxonomy leaf.
type Signals struct {
	Keywords   []string
	Phrases    []string
	Indicators []string
}

// SubIntent is a taxonomy leaf.
type SubIntent struct {
	Name    string
	Signals Signals
}

// PrimaryIntent groups sub-intents in declaration order.
type PrimaryIntent struct {
	Name string
	Subs []SubIntent
}

// Taxonomy is ordered: declaration order breaks score ties.
type Taxonomy []PrimaryIntent

// Primary intent names.
const (
	Marketing = "marketing"
	Coding    = "coding"
	Image     = "image"
	Writing   = "writing"
	General   = "general"
)

// Marketing sub-intents.
const (
	SubReporting         = "reporting"
	SubStrategy          = "strategy"
	SubAudienceTargeting = "audience_targeting"
	SubCampaignCreation  = "campaign_creation"
	SubOptimization      = "optimization"
)

// Default returns the taxonomy shipped with the service. Callers must treat
// it as read-only.
func Default() Taxonomy {
	return defaultTaxonomy
}

var defaultTaxonomy = Taxonomy{
	{
		Name: Marketing,
		Subs: []SubIntent{
			{
				Name: SubReporting,
				Signals: Signals{
					Keywords: []string{"report", "analyze", "analysis", "summarize", "summary",
						"performance", "results", "metrics", "dashboard"},
					Phrases: []string{"create a report", "from this data", "send to",
						"show the results", "performance report", "analyze the data"},
					Indicators: []string{"data", "metrics", "numbers", "statistics"},
				},
			},
			{
				Name: SubStrategy,
				Signals: Signals{
					Keywords:   []string{"strategy", "plan", "approach", "roadmap", "framework"},
					Phrases:    []string{"marketing strategy", "strategic plan", "go-to-market"},
					Indicators: []string{"how to", "what should", "best approach"},
				},
			},
			{
				Name: SubAudienceTargeting,
				Signals: Signals{
					Keywords:   []string{"audience", "targeting", "segment", "personas", "demographics"},
					Phrases:    []string{"target audience", "customer segment", "buyer persona"},
					Indicators: []string{"who should", "which audience", "demographic"},
				},
			},
			{
				Name: SubCampaignCreation,
				Signals: Signals{
					Keywords:   []string{"campaign", "ad", "advertisement", "creative", "copy"},
					Phrases:    []string{"create campaign", "launch campaign", "ad copy", "write ad"},
					Indicators: []string{"launch", "create", "new campaign"},
				},
			},
			{
				Name: SubOptimization,
				Signals: Signals{
					Keywords: []string{"optimize", "improve", "boost", "increase", "enhance",
						"reduce", "decrease", "lower"},
					Phrases: []string{"how to improve", "increase performance", "optimize campaign",
						"reduce cost", "lower cpa", "reduce cpc"},
					Indicators: []string{"better", "more", "higher", "lower cost", "cpa", "cpc", "roas"},
				},
			},
		},
	},
	{
		Name: Coding,
		Subs: []SubIntent{
			{
				Name: "web_development",
				Signals: Signals{
					Keywords:   []string{"website", "web", "html", "css", "react", "vue", "angular"},
					Phrases:    []string{"web app", "web application", "website"},
					Indicators: []string{"frontend", "backend", "fullstack"},
				},
			},
			{
				Name: "api_development",
				Signals: Signals{
					Keywords:   []string{"api", "endpoint", "rest", "graphql", "microservice"},
					Phrases:    []string{"api endpoint", "rest api", "web service"},
					Indicators: []string{"http", "request", "response"},
				},
			},
			{
				Name: "application",
				Signals: Signals{
					Keywords:   []string{"app", "application", "tool", "calculator", "todo", "tracker"},
					Phrases:    []string{"build app", "create application", "develop tool"},
					Indicators: []string{"functionality", "feature", "implement"},
				},
			},
			{
				Name: "debugging",
				Signals: Signals{
					Keywords:   []string{"bug", "error", "debug", "fix", "issue", "problem"},
					Phrases:    []string{"not working", "getting error", "fix bug"},
					Indicators: []string{"error message", "exception", "crash"},
				},
			},
		},
	},
	{
		Name: Image,
		Subs: []SubIntent{
			{
				Name: "creative",
				Signals: Signals{
					Keywords:   []string{"art", "artistic", "creative", "illustration", "painting"},
					Phrases:    []string{"create art", "artistic style", "digital painting"},
					Indicators: []string{"style", "mood", "aesthetic"},
				},
			},
			{
				Name: "photorealistic",
				Signals: Signals{
					Keywords:   []string{"photo", "realistic", "4k", "8k", "photography"},
					Phrases:    []string{"photorealistic", "real photo", "high resolution"},
					Indicators: []string{"realistic", "detailed", "quality"},
				},
			},
			{
				Name: "design",
				Signals: Signals{
					Keywords:   []string{"logo", "design", "branding", "icon", "ui"},
					Phrases:    []string{"design logo", "create design", "brand identity"},
					Indicators: []string{"professional", "modern", "clean"},
				},
			},
		},
	},
	{
		Name: Writing,
		Subs: []SubIntent{
			{
				Name: "creative",
				Signals: Signals{
					Keywords:   []string{"story", "poem", "narrative", "fiction", "novel"},
					Phrases:    []string{"write story", "creative writing", "tell story"},
					Indicators: []string{"character", "plot", "setting"},
				},
			},
			{
				Name: "professional",
				Signals: Signals{
					Keywords:   []string{"email", "letter", "report", "proposal", "memo"},
					Phrases:    []string{"business email", "formal letter", "professional writing"},
					Indicators: []string{"professional", "formal", "business"},
				},
			},
			{
				Name: "content",
				Signals: Signals{
					Keywords:   []string{"blog", "article", "content", "post", "copy"},
					Phrases:    []string{"blog post", "article writing", "content creation"},
					Indicators: []string{"seo", "engagement", "readers"},
				},
			},
		},
	},
}

// fallbackRule is one row of the flat primary-level classifier.
type fallbackRule struct {
	primary  string
	sub      string
	keywords []string
}

var fallbackRules = []fallbackRule{
	{Coding, "application", []string{"code", "python", "script", "function", "app", "calculator", "api"}},
	{Image, "creative", []string{"image", "photo", "picture", "logo", "design", "4k"}},
	{Writing, "content", []string{"write", "story", "essay", "article", "blog"}},
	{Marketing, SubStrategy, []string{"marketing", "brand", "audience", "campaign", "ad"}},
}

// internal/prompt/templates/marketing.go
package templates

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"promptcraft/internal/prompt/intent"
	"promptcraft/internal/prompt/stok"
)

// PlatformGeneral is returned when no advertising platform is mentioned.
const PlatformGeneral = "general"

type platformRule struct {
	name     string
	keywords []string
}

// Ordered: the first platform with a matching keyword wins.
var platforms = []platformRule{
	{"meta", []string{"facebook", "instagram", "meta ads", "fb ads"}},
	{"google", []string{"google ads", "adwords", "google advertising", "gdn"}},
	{"linkedin", []string{"linkedin ads", "linkedin advertising"}},
	{"tiktok", []string{"tiktok ads", "tiktok advertising"}},
	{"twitter", []string{"twitter ads", "x ads"}},
}

var platformMetrics = map[string][]string{
	"meta": {
		"Impressions", "Reach", "Clicks", "CTR (Click-Through Rate)",
		"CPC (Cost Per Click)", "CPM (Cost Per 1000 Impressions)",
		"Conversions", "Cost Per Conversion", "ROAS (Return on Ad Spend)",
		"Amount Spent", "Frequency", "Engagement Rate",
	},
	"google": {
		"Impressions", "Clicks", "CTR", "CPC", "Conversions",
		"Cost Per Conversion", "Conversion Rate", "Quality Score",
		"Impression Share", "ROAS", "Total Spend",
	},
	"linkedin": {
		"Impressions", "Clicks", "CTR", "CPC", "Conversions",
		"Cost Per Conversion", "Engagement Rate", "Leads",
		"Cost Per Lead", "Total Spend",
	},
	PlatformGeneral: {
		"Impressions", "Clicks", "CTR", "CPC", "Conversions",
		"Cost Per Conversion", "ROAS", "Total Spend",
	},
}

// DetectPlatform returns the advertising platform named in query.
func DetectPlatform(query string) string {
	q := strings.ToLower(query)
	for _, p := range platforms {
		for _, k := range p.keywords {
			if strings.Contains(q, k) {
				return p.name
			}
		}
	}
	return PlatformGeneral
}

// PlatformMetrics returns a copy of the metric list for platform, falling back
// to the general list.
func PlatformMetrics(platform string) []string {
	m, ok := platformMetrics[platform]
	if !ok {
		m = platformMetrics[PlatformGeneral]
	}
	return append([]string(nil), m...)
}

type stakeholderPrefs struct {
	focus []string
	style string
}

const defaultStakeholder = "manager"

var stakeholders = map[string]stakeholderPrefs{
	"manager": {
		focus: []string{"ROI", "budget efficiency", "key insights", "recommendations"},
		style: "executive summary with highlights",
	},
	"client": {
		focus: []string{"results", "value delivered", "goal achievement", "next steps"},
		style: "professional report with context",
	},
	"team": {
		focus: []string{"detailed metrics", "optimization opportunities", "learnings"},
		style: "detailed analysis with technical insights",
	},
	"executive": {
		focus: []string{"business impact", "strategic insights", "high-level trends"},
		style: "concise executive summary",
	},
}

func titleCase(s string) string {
	// cases.Caser is stateful, so one per call.
	return cases.Title(language.English).String(s)
}

func marketingPrompt(sub string, qctx stok.QueryContext, query string) stok.StructuredPrompt {
	switch sub {
	case intent.SubReporting:
		return reportingPrompt(qctx, query)
	case intent.SubStrategy:
		return strategyPrompt()
	case intent.SubAudienceTargeting:
		return audiencePrompt(query)
	case intent.SubCampaignCreation:
		return campaignPrompt(query)
	case intent.SubOptimization:
		return optimizationPrompt()
	default:
		return genericMarketingPrompt()
	}
}

func reportingPrompt(qctx stok.QueryContext, query string) stok.StructuredPrompt {
	platform := titleCase(DetectPlatform(query))
	who := qctx.Stakeholder
	if who == "" {
		who = defaultStakeholder
	}
	prefs, ok := stakeholders[who]
	if !ok {
		prefs = stakeholders[defaultStakeholder]
	}

	metrics := PlatformMetrics(DetectPlatform(query))
	bullets := make([]string, len(metrics))
	for i, m := range metrics {
		bullets[i] = "  • " + m
	}

	var k strings.Builder
	k.WriteString("To create the most effective report, please provide:\n")
	fmt.Fprintf(&k, "- The %s Ads performance data including metrics such as:\n", platform)
	k.WriteString(strings.Join(bullets, "\n"))
	k.WriteString("\n- The time period the data covers (e.g., last 7 days, last month, Q4 2024)\n")
	k.WriteString("- Any specific campaigns, ad sets, or accounts included\n")
	fmt.Fprintf(&k, "- Key business goals or KPIs your %s cares about most (e.g., ROAS target, CPA goal, conversion volume)\n", who)
	k.WriteString("- Budget information (total spend, remaining budget)\n")
	k.WriteString("- Any context about what you're trying to achieve with these ads (e.g., lead generation, sales, brand awareness, app installs)\n")
	k.WriteString("- Previous period data for comparison (optional but recommended)\n\n")
	k.WriteString("**Output Format**\n")
	fmt.Fprintf(&k, "The report will be structured as a %s including:\n", prefs.style)
	k.WriteString("- Executive summary with key highlights\n")
	k.WriteString("- Performance overview with main metrics\n")
	k.WriteString("- Campaign/Ad set breakdown\n")
	k.WriteString("- Trends and insights analysis\n")
	k.WriteString("- Recommendations and next steps\n")
	k.WriteString("- Visual representation suggestions (charts/graphs)\n\n")
	if qctx.HasData {
		k.WriteString("**Note:** Please share the data now, and I'll structure it into the report immediately.")
	} else {
		fmt.Fprintf(&k, "**Note:** Once you provide the data above, I'll create a professional report with clear sections, key takeaways, and actionable recommendations your %s needs to see.", who)
	}

	return stok.StructuredPrompt{
		Situation: fmt.Sprintf("You need to communicate %s Ads performance data to your %s in a professional, easy-to-understand format that highlights key metrics and insights.", platform, who),
		Task: fmt.Sprintf("The assistant should create a comprehensive report from %s Ads performance data that is formatted professionally and ready to send to a %s. "+
			"The report should present the data clearly with context and actionable insights tailored to what a %s needs to see.", platform, who, who),
		Objective: fmt.Sprintf("Deliver a polished, %s-ready report that demonstrates campaign performance, identifies trends, and supports decision-making around %s Ads spend and strategy. Focus on: %s.",
			who, platform, strings.Join(prefs.focus, ", ")),
		Knowledge: k.String(),
	}
}

func strategyPrompt() stok.StructuredPrompt {
	return stok.StructuredPrompt{
		Situation: "You need to develop a comprehensive marketing strategy to achieve specific business objectives.",
		Task:      "Create a detailed marketing strategy that outlines target audience, positioning, channels, budget allocation, and success metrics.",
		Objective: "Develop an actionable marketing plan that aligns with business goals and maximizes ROI across chosen channels.",
		Knowledge: `Please provide:
- Business/product details and unique value proposition
- Target market and audience insights
- Budget range and timeline
- Primary business objectives (brand awareness, lead gen, sales, etc.)
- Competitive landscape
- Current marketing efforts (if any)
- Key constraints or requirements`,
	}
}

var (
	audienceStrip = regexp.MustCompile(`(?i)\btarget audience\b|\bfor\b`)
	multiSpace    = regexp.MustCompile(`\s+`)
)

// audienceSubject strips the framing words from an audience question so the
// remainder names the product.
func audienceSubject(query string) string {
	s := audienceStrip.ReplaceAllString(query, " ")
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}

func audiencePrompt(query string) stok.StructuredPrompt {
	subject := audienceSubject(query)
	return stok.StructuredPrompt{
		Situation: fmt.Sprintf("You are developing a marketing strategy for '%s' and need to identify and define the target audience segments that would be most receptive to your product/service.", subject),
		Task: fmt.Sprintf(`Identify and describe 3-5 distinct audience segments for '%s', including:
- Demographics (age, gender, location, income level, education)
- Psychographics (interests, values, lifestyle, attitudes)
- Behavioral characteristics (purchasing behaviors, media consumption, brand interactions)
- Pain points and needs that your product addresses
- Primary motivations for engaging with the brand`, subject),
		Objective: "Create clear, actionable audience profiles that will guide marketing messaging, channel selection, budget allocation, and product positioning to maximize market reach and brand resonance.",
		Knowledge: `To provide the most relevant audience analysis, please share:
- Product/service details and key benefits
- Price point or tier (budget, mid-range, premium)
- Industry or category
- Geographic focus (local, national, global)
- Any existing customer data or insights
- B2B vs B2C focus
- Competitive alternatives in the market`,
	}
}

func campaignPrompt(query string) stok.StructuredPrompt {
	platform := titleCase(DetectPlatform(query))
	return stok.StructuredPrompt{
		Situation: fmt.Sprintf("You need to create a %s advertising campaign that effectively reaches your target audience and achieves specific marketing objectives.", platform),
		Task:      fmt.Sprintf("Develop a complete campaign structure including objectives, targeting, creative strategy, budget allocation, and success metrics for %s Ads.", platform),
		Objective: "Launch a well-structured campaign that is optimized for your goals and positioned for measurable success.",
		Knowledge: `Please provide:
- Campaign objective (conversions, traffic, awareness, engagement, etc.)
- Target audience details (demographics, interests, behaviors)
- Budget and timeline
- Product/service being promoted
- Key messaging or value propositions
- Creative assets available (images, videos, copy)
- Landing page or destination URL
- Success metrics and KPIs`,
	}
}

func optimizationPrompt() stok.StructuredPrompt {
	return stok.StructuredPrompt{
		Situation: "Your current advertising campaign is running, but you need to improve performance and achieve better results relative to your goals.",
		Task:      "Analyze current campaign performance and provide specific, actionable optimization recommendations to improve key metrics.",
		Objective: "Identify optimization opportunities and implement changes that will improve campaign efficiency and ROI.",
		Knowledge: `Please provide:
- Current campaign performance data (metrics, benchmarks)
- Specific issues or underperforming areas
- Campaign settings (targeting, budget, bidding strategy, creative)
- Business goals and KPI targets
- Time period analyzed
- Previous optimization attempts (if any)`,
	}
}

func genericMarketingPrompt() stok.StructuredPrompt {
	return stok.StructuredPrompt{
		Situation: "You have a marketing-related request that requires clarification.",
		Task:      "Understand your specific needs and provide targeted assistance.",
		Objective: "Help you achieve your marketing goals effectively.",
		Knowledge: `Please provide more details about:
- What you're trying to accomplish
- Any relevant context or data
- Specific challenges or constraints
- Desired outcomes`,
	}
}

// internal/prompt/intent/scorer.go
package intent

import (
	"fmt"
	"strings"

	"promptcraft/internal/prompt/stok"
)

// Signal weights. Phrases are the most specific cue, single keywords the least.
const (
	KeywordWeight   = 1.0
	PhraseWeight    = 3.0
	IndicatorWeight = 2.0

	// ScoreDivisor normalizes a raw leaf score into a confidence.
	ScoreDivisor = 10.0

	FallbackConfidence = 0.5
	GeneralConfidence  = 0.3
)

// Strategy selects how Classify picks an intent.
type Strategy int

const (
	// Weighted scores every taxonomy leaf and falls back to the flat
	// keyword classifier when nothing matches.
	Weighted Strategy = iota
	// KeywordOnly skips the taxonomy and uses the flat classifier directly.
	KeywordOnly
)

// ParseStrategy maps a config value onto a Strategy. Unknown values are
// rejected so misconfiguration surfaces at startup.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "weighted":
		return Weighted, nil
	case "keyword", "keyword_only":
		return KeywordOnly, nil
	default:
		return Weighted, fmt.Errorf("unknown scoring strategy %q", s)
	}
}

func (s Strategy) String() string {
	if s == KeywordOnly {
		return "keyword"
	}
	return "weighted"
}

// LeafScore is the raw score of one "primary.sub" leaf.
type LeafScore struct {
	Primary string
	Sub     string
	Score   float64
}

// Key returns the dotted leaf name.
func (l LeafScore) Key() string {
	return l.Primary + "." + l.Sub
}

// Scorer classifies queries against a taxonomy. It holds no mutable state
// and is safe for concurrent use.
type Scorer struct {
	taxonomy Taxonomy
	strategy Strategy
}

// NewScorer creates a scorer. A nil taxonomy means Default().
func NewScorer(taxonomy Taxonomy, strategy Strategy) *Scorer {
	if taxonomy == nil {
		taxonomy = Default()
	}
	return &Scorer{taxonomy: taxonomy, strategy: strategy}
}

// Strategy reports the configured strategy.
func (s *Scorer) Strategy() Strategy {
	return s.strategy
}

// Scores returns every leaf score in taxonomy declaration order.
func (s *Scorer) Scores(query string) []LeafScore {
	q := strings.ToLower(query)
	out := make([]LeafScore, 0, 16)
	for _, primary := range s.taxonomy {
		for _, sub := range primary.Subs {
			out = append(out, LeafScore{
				Primary: primary.Name,
				Sub:     sub.Name,
				Score:   scoreLeaf(q, sub.Signals),
			})
		}
	}
	return out
}

// ScoreMap returns the leaf scores keyed by "primary.sub".
func (s *Scorer) ScoreMap(query string) map[string]float64 {
	scores := s.Scores(query)
	m := make(map[string]float64, len(scores))
	for _, l := range scores {
		m[l.Key()] = l.Score
	}
	return m
}

// Classify returns the best intent for query.
func (s *Scorer) Classify(query string) stok.ScoredIntent {
	if s.strategy == KeywordOnly {
		return FallbackClassify(query)
	}

	var best LeafScore
	found := false
	for _, l := range s.Scores(query) {
		// strict comparison keeps the first-declared leaf on ties
		if !found || l.Score > best.Score {
			best = l
			found = true
		}
	}

	if !found || best.Score <= 0 {
		return FallbackClassify(query)
	}

	confidence := best.Score / ScoreDivisor
	if confidence > 1.0 {
		confidence = 1.0
	}
	return stok.ScoredIntent{Primary: best.Primary, Sub: best.Sub, Confidence: confidence}
}

// FallbackClassify is the flat keyword classifier used when no taxonomy leaf
// matches. It only decides the primary intent.
func FallbackClassify(query string) stok.ScoredIntent {
	q := strings.ToLower(query)
	for _, rule := range fallbackRules {
		if containsAny(q, rule.keywords) {
			return stok.ScoredIntent{Primary: rule.primary, Sub: rule.sub, Confidence: FallbackConfidence}
		}
	}
	return stok.ScoredIntent{Primary: General, Sub: General, Confidence: GeneralConfidence}
}

func scoreLeaf(q string, sig Signals) float64 {
	var score float64
	for _, k := range sig.Keywords {
		if strings.Contains(q, k) {
			score += KeywordWeight
		}
	}
	for _, p := range sig.Phrases {
		if strings.Contains(q, p) {
			score += PhraseWeight
		}
	}
	for _, i := range sig.Indicators {
		if strings.Contains(q, i) {
			score += IndicatorWeight
		}
	}
	return score
}

func containsAny(q string, words []string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

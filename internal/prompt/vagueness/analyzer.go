// internal/prompt/vagueness/analyzer.go
package vagueness

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"promptcraft/internal/common/logger"
	"promptcraft/internal/prompt/stok"
)

// VagueThreshold is the similarity below which a query is flagged vague.
const VagueThreshold = 0.35

// DefaultLoadTimeout bounds one attempt at embedding the curated exemplars.
const DefaultLoadTimeout = 2 * time.Minute

// Embedder turns text into a vector. Implementations may call the network.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// CuratedPrompts are the exemplars a well-formed request should resemble.
var CuratedPrompts = []string{
	"Write a Python script to scrape product data from Amazon using BeautifulSoup and Handle pagination.",
	"Create a React component for a responsive navigation bar with a hamburger menu for mobile devices.",
	"Generate a marketing email for a new SaaS product launch focusing on productivity features.",
	"Design a SQL query to calculate the monthly recurring revenue (MRR) for a subscription business.",
	"Explain the concept of Recursion in computer science with a simple factorial example.",
	"Write a detailed blog post about the benefits of intermittent fasting backed by scientific studies.",
	"Create a 4k realistic image of a cyberpunk city street at night with neon lights and rain.",
	"Debug this generic error in my Django application related to database migrations.",
	"Optimize this functions time complexity from O(n^2) to O(n log n).",
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCorpus replaces the curated exemplars.
func WithCorpus(prompts []string) Option {
	return func(a *Analyzer) {
		a.corpus = append([]string(nil), prompts...)
	}
}

// WithThreshold overrides VagueThreshold.
func WithThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		a.threshold = threshold
	}
}

// WithLoadTimeout overrides DefaultLoadTimeout.
func WithLoadTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		a.loadTimeout = d
	}
}

// Analyzer scores queries against the curated exemplars. The exemplar
// embeddings are computed once per Analyzer, on first use, and reused by
// every later call.
type Analyzer struct {
	embedder    Embedder
	logger      logger.Logger
	corpus      []string
	threshold   float64
	loadTimeout time.Duration

	mu      sync.Mutex
	loaded  bool
	curated [][]float64
}

// NewAnalyzer creates an analyzer backed by embedder.
func NewAnalyzer(embedder Embedder, log logger.Logger, opts ...Option) *Analyzer {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	a := &Analyzer{
		embedder:    embedder,
		logger:      log,
		corpus:      CuratedPrompts,
		threshold:   VagueThreshold,
		loadTimeout: DefaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Warm populates the exemplar cache if it is not loaded yet and returns the
// number of cached embeddings.
func (a *Analyzer) Warm(ctx context.Context) int {
	return len(a.curatedEmbeddings(ctx))
}

// Analyze returns the best similarity between query and any exemplar. A
// failed or empty query embedding yields (0, vague).
func (a *Analyzer) Analyze(ctx context.Context, query string) stok.SimilarityResult {
	curated := a.curatedEmbeddings(ctx)

	vec, err := a.embedder.Embed(ctx, normalize(query))
	if err != nil || len(vec) == 0 {
		fields := map[string]interface{}{"query_length": len(query)}
		if err != nil {
			fields["error"] = err.Error()
		}
		a.logger.Warn("query embedding unavailable, assuming vague", fields)
		return stok.SimilarityResult{MaxScore: 0.0, IsVague: true}
	}

	best := 0.0
	for _, c := range curated {
		if s := CosineSimilarity(vec, c); s > best {
			best = s
		}
	}

	return stok.SimilarityResult{MaxScore: best, IsVague: best < a.threshold}
}

// curatedEmbeddings loads the exemplar vectors under a.mu, so concurrent first
// callers wait for one load instead of each calling the provider. The cache
// is shared by every later call, so it is built under a context detached from
// the caller's cancellation and bounded by loadTimeout. It is marked loaded
// only when that context is still live after the loop and at least one
// exemplar embedded; otherwise the next call retries.
func (a *Analyzer) curatedEmbeddings(ctx context.Context) [][]float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.loaded {
		return a.curated
	}

	a.logger.Info("loading curated embeddings", map[string]interface{}{"count": len(a.corpus)})

	loadCtx := context.WithoutCancel(ctx)
	if a.loadTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(loadCtx, a.loadTimeout)
		defer cancel()
	}

	vectors := make([][]float64, 0, len(a.corpus))
	for i, p := range a.corpus {
		if loadCtx.Err() != nil {
			break
		}
		vec, err := a.embedder.Embed(loadCtx, normalize(p))
		if err != nil || len(vec) == 0 {
			fields := map[string]interface{}{"index": i}
			if err != nil {
				fields["error"] = err.Error()
			}
			a.logger.Warn("skipping curated prompt", fields)
			continue
		}
		vectors = append(vectors, vec)
	}

	if err := loadCtx.Err(); err != nil {
		a.logger.Warn("curated embedding load interrupted, will retry", map[string]interface{}{
			"embedded": len(vectors),
			"error":    err.Error(),
		})
		return vectors
	}

	if len(vectors) == 0 {
		a.logger.Warn("no curated embeddings loaded, will retry", nil)
		return nil
	}

	a.curated = vectors
	a.loaded = true
	a.logger.Info("curated embeddings loaded", map[string]interface{}{"loaded": len(vectors)})
	return a.curated
}

// CosineSimilarity returns a·b / (|a||b|), or 0 when either vector is empty,
// zero-length or the lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func normalize(text string) string {
	return strings.ReplaceAll(text, "\n", " ")
}

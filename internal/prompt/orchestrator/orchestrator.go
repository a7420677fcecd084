// internal/prompt/orchestrator/orchestrator.go
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "promptcraft/internal/common/errors"
	"promptcraft/internal/common/logger"
	"promptcraft/internal/common/metrics"
	"promptcraft/internal/common/observability"
	"promptcraft/internal/prompt/detect"
	"promptcraft/internal/prompt/intent"
	"promptcraft/internal/prompt/stok"
	"promptcraft/internal/prompt/templates"
)

// Run modes.
const (
	ModeBackend  = "backend"
	ModeTemplate = "template"
)

// Fixed confidence scores.
const (
	BackendConfidence  = 98
	TemplateConfidence = 95
)

// IntentError is the intent reported when the backend path failed.
const IntentError = "error"

var (
	ErrMissingCompleter = errors.New("backend requires a completer")
	ErrMissingAnalyzer  = errors.New("backend requires a vagueness analyzer")
	ErrUnknownMode      = errors.New("unknown run mode")
)

// Completer is the generative backend.
type Completer interface {
	Complete(ctx context.Context, system, instruction string) (string, error)
}

// VaguenessAnalyzer scores a query against the curated exemplars.
type VaguenessAnalyzer interface {
	Analyze(ctx context.Context, query string) stok.SimilarityResult
}

// Recorder persists results. Failures are logged and never change a result.
type Recorder interface {
	Record(ctx context.Context, id string, result stok.PipelineResult) error
}

// Backend is the capability set required for backend mode.
type Backend struct {
	Completer Completer
	Analyzer  VaguenessAnalyzer
}

// Pipeline turns raw queries into PipelineResults. It is safe for concurrent
// use.
type Pipeline struct {
	backend   *Backend
	scorer    *intent.Scorer
	generator *templates.Generator
	logger    logger.Logger
	obs       *observability.Observability
	recorder  Recorder
	mode      string
	timeout   time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithScorer replaces the default weighted scorer.
func WithScorer(s *intent.Scorer) Option {
	return func(p *Pipeline) {
		if s != nil {
			p.scorer = s
		}
	}
}

// WithObservability records run counts and durations through OpenTelemetry.
func WithObservability(obs *observability.Observability) Option {
	return func(p *Pipeline) { p.obs = obs }
}

// WithRecorder stores every result produced by Enhance.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithDefaultMode sets the mode Enhance uses when none is requested.
func WithDefaultMode(mode string) Option {
	return func(p *Pipeline) {
		if mode != "" {
			p.mode = mode
		}
	}
}

// WithTimeout bounds each backend run. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.timeout = d }
}

// NewUnconfigured returns a pipeline with no generative backend. Run always
// yields the credentials stub; RunTemplate works normally.
func NewUnconfigured(log logger.Logger, opts ...Option) *Pipeline {
	return newPipeline(nil, log, opts)
}

// NewWithBackend returns a pipeline that calls backend in Run.
func NewWithBackend(backend Backend, log logger.Logger, opts ...Option) (*Pipeline, error) {
	if backend.Completer == nil {
		return nil, ErrMissingCompleter
	}
	if backend.Analyzer == nil {
		return nil, ErrMissingAnalyzer
	}
	return newPipeline(&backend, log, opts), nil
}

func newPipeline(backend *Backend, log logger.Logger, opts []Option) *Pipeline {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	p := &Pipeline{
		backend:   backend,
		scorer:    intent.NewScorer(nil, intent.Weighted),
		generator: templates.NewGenerator(),
		logger:    log.Named("pipeline"),
		mode:      ModeBackend,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Configured reports whether Run will call a generative backend.
func (p *Pipeline) Configured() bool {
	return p.backend != nil
}

// Enhance runs query in mode (the default mode when empty), records the result
// and returns it with its history id.
func (p *Pipeline) Enhance(ctx context.Context, query, mode string) (string, stok.PipelineResult, error) {
	if mode == "" {
		mode = p.mode
	}

	var result stok.PipelineResult
	switch mode {
	case ModeBackend:
		result = p.Run(ctx, query)
	case ModeTemplate:
		result = p.RunTemplate(ctx, query)
	default:
		return "", stok.PipelineResult{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	id := uuid.New().String()
	if p.recorder != nil {
		if err := p.recorder.Record(ctx, id, result); err != nil {
			p.logger.Warn("Failed to record prompt history", map[string]interface{}{
				"id":    id,
				"error": err,
			})
		}
	}
	return id, result, nil
}

// Run is the backend path. It never panics and never returns an error: every
// failure is encoded in the result.
func (p *Pipeline) Run(ctx context.Context, query string) (result stok.PipelineResult) {
	start := time.Now()
	outcome := metrics.OutcomeSuccess

	defer func() {
		if r := recover(); r != nil {
			err := apperrors.NewInternalError(fmt.Errorf("panic: %v", r))
			result = p.errorResult(query, err)
			outcome = metrics.OutcomeBackendError
		}
		p.observe(ctx, ModeBackend, outcome, time.Since(start))
	}()

	if p.backend == nil {
		outcome = metrics.OutcomeNoCredentials
		return credentialsStub(query)
	}

	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	result, outcome = p.runBackend(callCtx, query)
	return result
}

func (p *Pipeline) runBackend(ctx context.Context, query string) (stok.PipelineResult, string) {
	qctx := detect.Detect(query)
	lexical := p.scorer.Classify(query)

	sim := p.backend.Analyzer.Analyze(ctx, query)
	if sim.IsVague {
		metrics.PipelineVagueQueries.Inc()
	}

	text, err := p.backend.Completer.Complete(ctx, SystemMessage, BuildInstruction(query, sim.IsVague))
	if err != nil {
		return p.errorResult(query, err), metrics.OutcomeBackendError
	}

	reply := ParseReply(text)
	outcome := metrics.OutcomeSuccess
	if reply.Partial() {
		outcome = metrics.OutcomePartial
		for _, name := range reply.Missing {
			metrics.BackendReplyMissingSections.WithLabelValues(name).Inc()
		}
		p.logger.Warn("Backend reply incomplete", map[string]interface{}{
			"error": apperrors.NewParseIncompleteError(reply.Missing),
		})
	}

	primary := strings.ToLower(reply.Intent)
	if primary == "" {
		primary = lexical.Primary
	}
	sub := ""
	if primary == lexical.Primary {
		sub = lexical.Sub
	}

	suggestions := reply.Suggestions
	if len(suggestions) == 0 {
		_, suggestions = p.generator.Generate(lexical.Primary, lexical.Sub, qctx, query)
	}

	result := stok.PipelineResult{
		OriginalPrompt:   query,
		EnhancedPrompt:   reply.Prompt.Render(),
		StructuredPrompt: reply.Prompt,
		Intent:           primary,
		SubIntent:        sub,
		ConfidenceScore:  BackendConfidence,
		Suggestions:      stok.CapSuggestions(suggestions),
		Context:          &qctx,
	}
	result.WithSimilarity(sim)
	return result, outcome
}

// RunTemplate is the backend-free path. It is deterministic for a given query
// and performs no I/O.
func (p *Pipeline) RunTemplate(ctx context.Context, query string) stok.PipelineResult {
	start := time.Now()

	qctx := detect.Detect(query)
	scored := p.scorer.Classify(query)
	prompt, suggestions := p.generator.Generate(scored.Primary, scored.Sub, qctx, query)

	result := stok.PipelineResult{
		OriginalPrompt:   query,
		EnhancedPrompt:   prompt.Render(),
		StructuredPrompt: prompt,
		Intent:           scored.Primary,
		SubIntent:        scored.Sub,
		ConfidenceScore:  TemplateConfidence,
		Suggestions:      suggestions,
		Context:          &qctx,
	}

	p.observe(ctx, ModeTemplate, metrics.OutcomeSuccess, time.Since(start))
	return result
}

func (p *Pipeline) errorResult(query string, err error) stok.PipelineResult {
	kind := errorKind(err)
	p.logger.Error("Generative backend call failed", map[string]interface{}{
		"error_type":    kind,
		"error":         err,
		"prompt_length": len(query),
	})

	prompt := stok.StructuredPrompt{
		Situation: "API Error: " + kind,
		Task:      err.Error(),
		Objective: "Fix the API configuration",
		Knowledge: "Check console for detailed error",
	}.Complete()

	result := stok.PipelineResult{
		OriginalPrompt:   query,
		EnhancedPrompt:   "Error generating prompt: " + err.Error(),
		StructuredPrompt: prompt,
		Intent:           IntentError,
		ConfidenceScore:  0,
		Suggestions:      []string{"Check API Quota", "Verify Internet Connection", "Check API Key"},
	}
	result.WithSimilarity(stok.SimilarityResult{MaxScore: 0, IsVague: true})
	return result
}

func credentialsStub(query string) stok.PipelineResult {
	result := stok.PipelineResult{
		OriginalPrompt: query,
		EnhancedPrompt: "Error: no generative backend API key set. Add OPENAI_API_KEY or GEMINI_API_KEY to your environment variables.",
		StructuredPrompt: stok.StructuredPrompt{
			Situation: "API Key Missing",
			Task:      "Please configure backend environment variables.",
			Objective: "Enable AI Features",
			Knowledge: "Get a key from platform.openai.com or aistudio.google.com",
		},
		Intent:          intent.General,
		ConfidenceScore: 0,
		Suggestions:     []string{"Add OPENAI_API_KEY to backend .env", "Deploy with env var"},
	}
	result.WithSimilarity(stok.SimilarityResult{MaxScore: 0, IsVague: true})
	return result
}

// errorKind names err by its error code, or by its Go type when it has none.
func errorKind(err error) string {
	if stdErr, ok := apperrors.As(err); ok {
		return string(stdErr.Code)
	}
	return fmt.Sprintf("%T", err)
}

func (p *Pipeline) observe(ctx context.Context, mode, outcome string, d time.Duration) {
	metrics.PipelineRuns.WithLabelValues(mode, outcome).Inc()
	metrics.PipelineRunDuration.WithLabelValues(mode).Observe(d.Seconds())
	p.obs.RecordRun(ctx, mode, outcome)
	p.obs.RecordRunDuration(ctx, mode, d)
}

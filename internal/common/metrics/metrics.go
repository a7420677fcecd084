// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline outcomes used as the "outcome" label.
const (
	OutcomeSuccess       = "success"
	OutcomePartial       = "partial"
	OutcomeNoCredentials = "no_credentials"
	OutcomeBackendError  = "backend_error"
)

// Embedding cache results used as the "result" label.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Total number of pipeline runs by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	PipelineRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_run_duration_seconds",
			Help:    "Duration of pipeline runs in seconds",
			Buckets: []float64{0.005, 0.05, 0.25, 1, 2.5, 5, 10, 30},
		},
		[]string{"mode"},
	)

	PipelineVagueQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_vague_queries_total",
			Help: "Total number of queries flagged as vague",
		},
	)

	BackendReplyMissingSections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_reply_missing_sections_total",
			Help: "Sections absent from generative backend replies",
		},
		[]string{"section"},
	)

	EmbeddingCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedding_cache_requests_total",
			Help: "Embedding cache lookups by result",
		},
		[]string{"result"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

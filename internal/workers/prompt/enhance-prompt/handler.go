// internal/workers/prompt/enhance-prompt/handler.go
package enhanceprompt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "promptcraft/internal/common/errors"
	"promptcraft/internal/common/logger"
	"promptcraft/internal/common/metrics"
	"promptcraft/internal/common/validation"
	"promptcraft/internal/prompt/stok"
)

const TaskType = "enhance-prompt"

// Enhancer runs the prompt pipeline.
type Enhancer interface {
	Enhance(ctx context.Context, query, mode string) (string, stok.PipelineResult, error)
}

type Handler struct {
	config       *Config
	enhancer     Enhancer
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, enhancer Enhancer, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		enhancer:     enhancer,
		logger:       l,
		errorHandler: apperrors.NewErrorHandler(l),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer func() {
		metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, job.Variables)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.CodeOf(err))).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, variables string) (*Output, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &doc); err != nil {
		return nil, apperrors.NewInvalidPromptError(fmt.Sprintf("parse input: %v", err))
	}

	result, err := validation.ValidatePromptRequest(doc)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidPromptError(fmt.Sprintf("parse input: %v", err))
	}
	return h.Execute(ctx, &input)
}

// Execute enhances an already validated input.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	id, enhancement, err := h.enhancer.Enhance(ctx, input.Prompt, input.Mode)
	if err != nil {
		return nil, apperrors.NewInvalidPromptError(err.Error())
	}

	h.logger.Info("prompt enhanced", map[string]interface{}{
		"requestId":  id,
		"intent":     enhancement.Intent,
		"confidence": enhancement.ConfidenceScore,
	})

	return &Output{RequestID: id, Enhancement: enhancement}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

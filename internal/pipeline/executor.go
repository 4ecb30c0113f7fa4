package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mirrorworld/avatar-backend/internal/assets"
	"github.com/mirrorworld/avatar-backend/internal/pipeline/domain"
	"github.com/mirrorworld/avatar-backend/internal/pipeline/stages"
)

// TerminalSink observes jobs reaching a terminal state. Implementations
// must be best-effort: failures are logged by the executor and never affect
// job state.
type TerminalSink interface {
	JobFinished(ctx context.Context, job domain.Job)
}

// Executor drives a single job through the stage table to one of its two
// terminal outcomes. One executor instance is shared by all jobs; the
// single-writer discipline comes from each Run owning exactly one job ID.
type Executor struct {
	registry *Registry
	handlers stages.Set
	assets   *assets.Store
	logger   *slog.Logger
	sinks    []TerminalSink
}

// ExecutorConfig holds executor dependencies.
type ExecutorConfig struct {
	Registry *Registry
	Handlers stages.Set
	Assets   *assets.Store
	Logger   *slog.Logger
	Sinks    []TerminalSink
}

// NewExecutor creates an executor.
func NewExecutor(cfg *ExecutorConfig) *Executor {
	return &Executor{
		registry: cfg.Registry,
		handlers: cfg.Handlers,
		assets:   cfg.Assets,
		logger:   cfg.Logger,
		sinks:    cfg.Sinks,
	}
}

// Run executes the full pipeline for one job. All handler failures and
// panics are converted into terminal job state; Run itself never panics and
// returns the stage error only for observability at the spawn site.
func (e *Executor) Run(ctx context.Context, in stages.Input) (err error) {
	start := time.Now()
	logger := e.logger.With(slog.String("job_id", in.JobID))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stage handler panic: %v", r)
			logger.Error("Pipeline panicked",
				slog.Any("panic", r),
			)
			e.fail(ctx, logger, in.JobID, err)
		}
	}()

	for _, def := range domain.Stages() {
		if stageErr := e.runStage(ctx, logger, def, in); stageErr != nil {
			e.fail(ctx, logger, in.JobID, stageErr)
			return stageErr
		}
	}

	bundle, buildErr := e.buildAssetBundle(in.JobID)
	if buildErr != nil {
		wrapped := domain.NewStageExecutionError(domain.StageUnityPrep, buildErr)
		e.fail(ctx, logger, in.JobID, wrapped)
		return wrapped
	}

	patch := domain.JobPatch{
		CurrentStage: domain.StringPtr(domain.StageCompleted),
		Progress:     domain.Float64Ptr(1.0),
		IsCompleted:  domain.BoolPtr(true),
		Assets:       bundle,
	}
	if updateErr := e.registry.Update(in.JobID, patch); updateErr != nil {
		logger.Error("Failed to record job completion",
			slog.Any("error", updateErr),
		)
		return updateErr
	}

	logger.Info("Pipeline completed",
		slog.Duration("duration", time.Since(start)),
	)
	e.notifySinks(ctx, in.JobID)
	return nil
}

// runStage advances the job to the stage's checkpoint, then invokes its
// handler and waits for it.
func (e *Executor) runStage(ctx context.Context, logger *slog.Logger, def domain.StageDefinition, in stages.Input) error {
	patch := domain.JobPatch{
		CurrentStage: domain.StringPtr(def.Name),
		Progress:     domain.Float64Ptr(def.TargetProgress),
	}
	if err := e.registry.Update(in.JobID, patch); err != nil {
		return fmt.Errorf("failed to enter stage %s: %w", def.Name, err)
	}

	handler, ok := e.handlers[def.Name]
	if !ok {
		return domain.NewStageExecutionError(def.Name, errors.New("no handler registered"))
	}

	stageStart := time.Now()
	logger.Debug("Stage started",
		slog.String("stage", def.Name),
		slog.Float64("progress", def.TargetProgress),
	)

	if err := handler.Run(ctx, in); err != nil {
		return domain.NewStageExecutionError(def.Name, err)
	}

	logger.Debug("Stage completed",
		slog.String("stage", def.Name),
		slog.Duration("stage_duration", time.Since(stageStart)),
	)
	return nil
}

// fail records the terminal failure state. CurrentStage is left at the
// failing stage and progress keeps the last checkpoint reached.
func (e *Executor) fail(ctx context.Context, logger *slog.Logger, jobID string, cause error) {
	logger.Error("Pipeline failed",
		slog.String("error", cause.Error()),
	)

	patch := domain.JobPatch{
		IsCompleted: domain.BoolPtr(true),
		Error:       domain.StringPtr(cause.Error()),
	}
	if err := e.registry.Update(jobID, patch); err != nil {
		logger.Error("Failed to record job failure",
			slog.Any("error", err),
		)
		return
	}
	e.notifySinks(ctx, jobID)
}

func (e *Executor) notifySinks(ctx context.Context, jobID string) {
	if len(e.sinks) == 0 {
		return
	}
	job, err := e.registry.Get(jobID)
	if err != nil {
		e.logger.Error("Failed to load job for terminal sinks",
			slog.String("job_id", jobID),
			slog.Any("error", err),
		)
		return
	}
	for _, sink := range e.sinks {
		sink.JobFinished(ctx, job)
	}
}

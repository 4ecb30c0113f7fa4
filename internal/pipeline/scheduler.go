package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mirrorworld/avatar-backend/internal/pipeline/stages"
)

// Scheduler turns a submission into a running pipeline without blocking the
// submitter. Each accepted job gets its own goroutine, joined through Wait
// for graceful shutdown.
type Scheduler struct {
	registry *Registry
	executor *Executor
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// SchedulerConfig holds scheduler dependencies.
type SchedulerConfig struct {
	Registry *Registry
	Executor *Executor
	Logger   *slog.Logger
}

// NewScheduler creates a scheduler.
func NewScheduler(cfg *SchedulerConfig) *Scheduler {
	return &Scheduler{
		registry: cfg.Registry,
		executor: cfg.Executor,
		logger:   cfg.Logger,
	}
}

// Submit registers a new job and launches its pipeline in the background.
// The returned ID is queryable immediately, before the first stage
// transition, with the job in the pending state.
func (s *Scheduler) Submit(image []byte, config map[string]any) (string, error) {
	jobID := uuid.NewString()

	if _, err := s.registry.Create(jobID); err != nil {
		return "", err
	}

	s.logger.Info("Job accepted",
		slog.String("job_id", jobID),
		slog.Int("image_size", len(image)),
	)

	in := stages.Input{
		JobID:  jobID,
		Image:  image,
		Config: config,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// Run recovers handler panics into the job's error field; the
		// error return is already reflected in registry state.
		_ = s.executor.Run(context.Background(), in)
	}()

	return jobID, nil
}

// Wait blocks until every in-flight pipeline has reached a terminal state.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

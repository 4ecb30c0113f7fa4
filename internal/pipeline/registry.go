package pipeline

import (
	"sync"
	"time"

	"github.com/mirrorworld/avatar-backend/internal/pipeline/domain"
)

// Registry is the concurrency-safe store of all job state, keyed by job ID.
// It is the single source of truth: executors write through Update, pollers
// read snapshots through Get. Instances are injected, never global.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		jobs: make(map[string]*domain.Job),
	}
}

// Create inserts a new job in the pending state and returns a snapshot of
// it. Returns domain.ErrDuplicateJob if the identifier is already taken.
func (r *Registry) Create(jobID string) (domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[jobID]; exists {
		return domain.Job{}, domain.ErrDuplicateJob
	}

	now := time.Now()
	job := &domain.Job{
		ID:           jobID,
		CurrentStage: domain.StagePending,
		Progress:     0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.jobs[jobID] = job

	return job.Clone(), nil
}

// Update atomically merges the patch into the stored job. Returns
// domain.ErrJobNotFound if the identifier is unknown.
//
// The merge enforces the job invariants regardless of caller: progress
// never decreases, IsCompleted never reverts to false, and Assets and Error
// are each write-once.
func (r *Registry) Update(jobID string, patch domain.JobPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[jobID]
	if !exists {
		return domain.ErrJobNotFound
	}

	if patch.CurrentStage != nil {
		job.CurrentStage = *patch.CurrentStage
	}
	if patch.Progress != nil && *patch.Progress > job.Progress {
		job.Progress = *patch.Progress
	}
	if patch.IsCompleted != nil && *patch.IsCompleted {
		job.IsCompleted = true
	}
	if patch.Assets != nil && job.Assets == nil {
		bundle := patch.Assets.Clone()
		job.Assets = &bundle
	}
	if patch.Error != nil && job.Error == "" {
		job.Error = *patch.Error
	}
	job.UpdatedAt = time.Now()

	return nil
}

// Get returns a point-in-time deep copy of the job, or
// domain.ErrJobNotFound if the identifier is unknown.
func (r *Registry) Get(jobID string) (domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, exists := r.jobs[jobID]
	if !exists {
		return domain.Job{}, domain.ErrJobNotFound
	}

	return job.Clone(), nil
}

// Len returns the number of registered jobs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

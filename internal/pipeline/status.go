package pipeline

import "github.com/mirrorworld/avatar-backend/internal/pipeline/domain"

// StatusReader is the read-only query surface over the registry used by
// polling clients.
type StatusReader struct {
	registry *Registry
}

// NewStatusReader creates a status reader over the given registry.
func NewStatusReader(registry *Registry) *StatusReader {
	return &StatusReader{registry: registry}
}

// Query returns a point-in-time snapshot of the job, or
// domain.ErrJobNotFound for an unknown identifier.
func (r *StatusReader) Query(jobID string) (domain.Job, error) {
	return r.registry.Get(jobID)
}

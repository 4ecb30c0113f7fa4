package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateJob is returned when creating a job whose identifier is
	// already registered. Unreachable with UUID generation, but defined.
	ErrDuplicateJob = errors.New("job already exists")

	// ErrJobNotFound is returned on a registry lookup miss
	ErrJobNotFound = errors.New("job not found")
)

// StageExecutionError wraps a failure reported by a stage handler. It is
// terminal for the owning job only.
type StageExecutionError struct {
	Stage string
	Err   error
}

func (e *StageExecutionError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageExecutionError) Unwrap() error {
	return e.Err
}

// NewStageExecutionError wraps err with the stage it occurred in.
func NewStageExecutionError(stage string, err error) error {
	return &StageExecutionError{Stage: stage, Err: err}
}

package stages

import (
	"context"
	"time"

	"github.com/mirrorworld/avatar-backend/internal/pipeline/domain"
)

// Relative durations of the simulated stages, in delay units. They mirror
// the observed runtime ratios of the real models: mesh generation dominates,
// the upload ack is effectively free.
var simulatedUnits = map[string]int{
	domain.StageUploading:      0,
	domain.StageSegmentation:   2,
	domain.StageDepthAnalysis:  3,
	domain.StageMeshGeneration: 4,
	domain.StageTextureMapping: 3,
	domain.StageRigging:        2,
	domain.StageAnimation:      2,
	domain.StageUnityPrep:      1,
}

// NewSimulated returns a handler that sleeps for the given duration and
// succeeds. It aborts early if the context is canceled.
func NewSimulated(delay time.Duration) Handler {
	return HandlerFunc(func(ctx context.Context, in Input) error {
		if delay <= 0 {
			return nil
		}
		select {
		case <-time.After(delay):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// NewSimulatedSet builds a full handler set of delay-based stand-ins, one
// per executable stage. unit scales every stage proportionally; tests pass
// a zero or sub-millisecond unit to run the whole pipeline instantly.
func NewSimulatedSet(unit time.Duration) Set {
	set := make(Set, len(simulatedUnits))
	for _, def := range domain.Stages() {
		set[def.Name] = NewSimulated(time.Duration(simulatedUnits[def.Name]) * unit)
	}
	return set
}

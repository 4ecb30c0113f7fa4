package stages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorworld/avatar-backend/internal/pipeline/domain"
)

func TestNewSimulatedSet_CoversEveryStage(t *testing.T) {
	set := NewSimulatedSet(0)
	for _, name := range domain.StageNames() {
		assert.Contains(t, set, name)
	}
	assert.Len(t, set, len(domain.StageNames()))
}

func TestNewSimulated_ZeroDelayRunsInstantly(t *testing.T) {
	h := NewSimulated(0)

	start := time.Now()
	err := h.Run(context.Background(), Input{JobID: "job-1"})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestNewSimulated_RespectsCancellation(t *testing.T) {
	h := NewSimulated(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.Run(ctx, Input{JobID: "job-1"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSet_With_ReplacesWithoutMutatingOriginal(t *testing.T) {
	original := NewSimulatedSet(0)

	boom := errors.New("boom")
	replaced := original.With(domain.StageRigging, HandlerFunc(func(ctx context.Context, in Input) error {
		return boom
	}))

	err := replaced[domain.StageRigging].Run(context.Background(), Input{})
	assert.ErrorIs(t, err, boom)

	err = original[domain.StageRigging].Run(context.Background(), Input{})
	assert.NoError(t, err)
}

package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorworld/avatar-backend/internal/pipeline/domain"
)

func TestNewJobEvent_Completed(t *testing.T) {
	finished := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	job := domain.Job{
		ID:           "job-1",
		CurrentStage: domain.StageCompleted,
		Progress:     1.0,
		IsCompleted:  true,
		UpdatedAt:    finished,
	}

	event := NewJobEvent(job)
	assert.Equal(t, "job-1", event.JobID)
	assert.Equal(t, "completed", event.Status)
	assert.Equal(t, domain.StageCompleted, event.Stage)
	assert.Equal(t, 1.0, event.Progress)
	assert.Equal(t, finished, event.FinishedAt)
	assert.Equal(t, RoutingKeyCompleted, event.RoutingKey())
}

func TestNewJobEvent_Failed(t *testing.T) {
	job := domain.Job{
		ID:           "job-2",
		CurrentStage: domain.StageMeshGeneration,
		Progress:     0.5,
		IsCompleted:  true,
		Error:        "gpu out of memory",
	}

	event := NewJobEvent(job)
	assert.Equal(t, "failed", event.Status)
	assert.Equal(t, domain.StageMeshGeneration, event.Stage)
	assert.Equal(t, "gpu out of memory", event.Error)
	assert.Equal(t, RoutingKeyFailed, event.RoutingKey())
}

func TestJobEvent_JSONOmitsEmptyError(t *testing.T) {
	event := NewJobEvent(domain.Job{
		ID:           "job-3",
		CurrentStage: domain.StageCompleted,
		IsCompleted:  true,
	})

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"error"`)
	assert.Contains(t, string(data), `"jobId":"job-3"`)
}

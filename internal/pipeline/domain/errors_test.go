package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageExecutionError(t *testing.T) {
	cause := errors.New("model timed out")
	err := NewStageExecutionError(StageDepthAnalysis, cause)

	assert.Contains(t, err.Error(), StageDepthAnalysis)
	assert.Contains(t, err.Error(), "model timed out")
	assert.ErrorIs(t, err, cause)

	var stageErr *StageExecutionError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageDepthAnalysis, stageErr.Stage)
}

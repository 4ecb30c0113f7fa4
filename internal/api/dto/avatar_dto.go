package dto

import "github.com/mirrorworld/avatar-backend/internal/pipeline/domain"

// ProcessAvatarResponse is returned when a submission is accepted.
type ProcessAvatarResponse struct {
	JobID         string `json:"jobId"`
	EstimatedTime int    `json:"estimatedTime"`
	Message       string `json:"message"`
}

// JobStatusResponse is the polling payload for one job.
type JobStatusResponse struct {
	JobID        string              `json:"jobId"`
	CurrentStage string              `json:"currentStage"`
	Progress     float64             `json:"progress"`
	IsCompleted  bool                `json:"isCompleted"`
	Assets       *domain.AssetBundle `json:"assets,omitempty"`
	Error        string              `json:"error,omitempty"`
}

// NewJobStatusResponse maps a job snapshot to the wire shape.
func NewJobStatusResponse(job domain.Job) JobStatusResponse {
	return JobStatusResponse{
		JobID:        job.ID,
		CurrentStage: job.CurrentStage,
		Progress:     job.Progress,
		IsCompleted:  job.IsCompleted,
		Assets:       job.Assets,
		Error:        job.Error,
	}
}

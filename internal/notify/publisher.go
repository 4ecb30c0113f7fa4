// Package notify publishes job lifecycle events to RabbitMQ so downstream
// consumers can react to completed or failed avatars without polling.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mirrorworld/avatar-backend/internal/pipeline/domain"
	"github.com/mirrorworld/avatar-backend/shared/rabbitmq"
)

// Routing keys for terminal job events.
const (
	RoutingKeyCompleted = "avatar.job.completed"
	RoutingKeyFailed    = "avatar.job.failed"
)

// JobEvent is the message body published for every terminal job.
type JobEvent struct {
	JobID      string    `json:"jobId"`
	Status     string    `json:"status"`
	Stage      string    `json:"stage"`
	Progress   float64   `json:"progress"`
	Error      string    `json:"error,omitempty"`
	FinishedAt time.Time `json:"finishedAt"`
}

// NewJobEvent builds the event for a terminal job snapshot.
func NewJobEvent(job domain.Job) JobEvent {
	status := "completed"
	if job.Failed() {
		status = "failed"
	}

	return JobEvent{
		JobID:      job.ID,
		Status:     status,
		Stage:      job.CurrentStage,
		Progress:   job.Progress,
		Error:      job.Error,
		FinishedAt: job.UpdatedAt,
	}
}

// RoutingKey returns the routing key matching the event's status.
func (e JobEvent) RoutingKey() string {
	if e.Status == "failed" {
		return RoutingKeyFailed
	}
	return RoutingKeyCompleted
}

// Publisher pushes terminal job events through the RabbitMQ client.
// Publishing is best-effort; a broker outage never affects job state.
type Publisher struct {
	client *rabbitmq.Client
	logger *slog.Logger
}

// NewPublisher creates a publisher over an established client.
func NewPublisher(client *rabbitmq.Client, logger *slog.Logger) *Publisher {
	return &Publisher{
		client: client,
		logger: logger,
	}
}

// JobFinished publishes the terminal event for the job.
func (p *Publisher) JobFinished(ctx context.Context, job domain.Job) {
	event := NewJobEvent(job)

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to encode job event",
			slog.String("job_id", job.ID),
			slog.Any("error", err),
		)
		return
	}

	if err := p.client.PublishWithRetry(ctx, event.RoutingKey(), body); err != nil {
		p.logger.Error("Failed to publish job event",
			slog.String("job_id", job.ID),
			slog.String("routing_key", event.RoutingKey()),
			slog.Any("error", err),
		)
		return
	}

	p.logger.Debug("Job event published",
		slog.String("job_id", job.ID),
		slog.String("status", event.Status),
	)
}

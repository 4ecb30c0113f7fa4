// Package archive records terminal job outcomes in PostgreSQL for offline
// inspection. The in-memory registry stays the source of truth; the archive
// has no read path and is strictly best-effort.
package archive

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mirrorworld/avatar-backend/internal/pipeline/domain"
	"github.com/mirrorworld/avatar-backend/shared/postgresql"
)

const createTableQuery = `
	CREATE TABLE IF NOT EXISTS avatar_jobs (
		job_id       TEXT PRIMARY KEY,
		final_stage  TEXT NOT NULL,
		progress     DOUBLE PRECISION NOT NULL,
		error        TEXT,
		assets       JSONB,
		created_at   TIMESTAMPTZ NOT NULL,
		finished_at  TIMESTAMPTZ NOT NULL
	)
`

const insertJobQuery = `
	INSERT INTO avatar_jobs (
		job_id, final_stage, progress, error, assets, created_at, finished_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7
	)
	ON CONFLICT (job_id) DO NOTHING
`

// Recorder archives completed and failed jobs.
type Recorder struct {
	db     *postgresql.Client
	logger *slog.Logger
}

// NewRecorder ensures the archive table exists and returns a recorder.
func NewRecorder(ctx context.Context, db *postgresql.Client, logger *slog.Logger) (*Recorder, error) {
	if err := db.ExecContext(ctx, createTableQuery); err != nil {
		return nil, err
	}

	return &Recorder{
		db:     db,
		logger: logger,
	}, nil
}

// JobFinished inserts the terminal job record. Errors are logged and
// swallowed; archiving never affects job state.
func (r *Recorder) JobFinished(ctx context.Context, job domain.Job) {
	var assetsJSON any
	if job.Assets != nil {
		data, err := json.Marshal(job.Assets)
		if err != nil {
			r.logger.Error("Failed to encode job assets for archive",
				slog.String("job_id", job.ID),
				slog.Any("error", err),
			)
			return
		}
		assetsJSON = string(data)
	}

	var errText any
	if job.Error != "" {
		errText = job.Error
	}

	err := r.db.ExecContext(ctx, insertJobQuery,
		job.ID,
		job.CurrentStage,
		job.Progress,
		errText,
		assetsJSON,
		job.CreatedAt,
		time.Now(),
	)
	if err != nil {
		r.logger.Error("Failed to archive job",
			slog.String("job_id", job.ID),
			slog.Any("error", err),
		)
		return
	}

	r.logger.Debug("Job archived",
		slog.String("job_id", job.ID),
		slog.String("final_stage", job.CurrentStage),
	)
}

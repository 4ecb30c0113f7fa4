package handler

import (
	"log/slog"
	"time"

	"github.com/mirrorworld/avatar-backend/internal/assets"
	"github.com/mirrorworld/avatar-backend/internal/pipeline"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger        *slog.Logger
	Scheduler     *pipeline.Scheduler
	Status        *pipeline.StatusReader
	Assets        *assets.Store
	EstimatedTime time.Duration
	MaxImageSize  int64
}

// AvatarHandler handles avatar pipeline HTTP requests
type AvatarHandler struct {
	logger        *slog.Logger
	scheduler     *pipeline.Scheduler
	status        *pipeline.StatusReader
	assets        *assets.Store
	estimatedTime time.Duration
	maxImageSize  int64
}

// NewAvatarHandler creates a new AvatarHandler instance
func NewAvatarHandler(deps *Dependencies) *AvatarHandler {
	return &AvatarHandler{
		logger:        deps.Logger,
		scheduler:     deps.Scheduler,
		status:        deps.Status,
		assets:        deps.Assets,
		estimatedTime: deps.EstimatedTime,
		maxImageSize:  deps.MaxImageSize,
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mirrorworld/avatar-backend/internal/api/dto"
	"github.com/mirrorworld/avatar-backend/internal/pipeline/domain"
)

// ProcessAvatar handles POST /api/v1/process-avatar
// Accepts a multipart photo upload plus a JSON config form field and starts
// the generation pipeline in the background.
func (h *AvatarHandler) ProcessAvatar(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		h.logger.Error("Missing photo upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "photo file is required",
		})
		return
	}

	if h.maxImageSize > 0 && file.Size > h.maxImageSize {
		h.logger.Error("Photo upload too large",
			slog.Int64("size", file.Size),
			slog.Int64("max_size", h.maxImageSize),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "photo exceeds maximum allowed size",
		})
		return
	}

	configRaw := c.PostForm("config")
	if configRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "config form field is required",
		})
		return
	}

	var config map[string]any
	if err := json.Unmarshal([]byte(configRaw), &config); err != nil {
		h.logger.Error("Malformed config JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "config must be a JSON object",
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		h.logger.Error("Failed to open photo upload", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to read photo upload",
		})
		return
	}
	defer src.Close()

	image, err := io.ReadAll(src)
	if err != nil {
		h.logger.Error("Failed to read photo upload", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to read photo upload",
		})
		return
	}

	jobID, err := h.scheduler.Submit(image, config)
	if err != nil {
		h.logger.Error("Failed to submit job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to start avatar generation",
		})
		return
	}

	h.logger.Info("Avatar generation started",
		slog.String("job_id", jobID),
		slog.String("filename", file.Filename),
		slog.Int("image_size", len(image)),
	)

	c.JSON(http.StatusOK, dto.ProcessAvatarResponse{
		JobID:         jobID,
		EstimatedTime: int(h.estimatedTime.Seconds()),
		Message:       "Avatar generation started",
	})
}

// GetStatus handles GET /api/v1/status/:job_id
// Returns a point-in-time snapshot of the job's stage, progress, and result.
func (h *AvatarHandler) GetStatus(c *gin.Context) {
	jobID := c.Param("job_id")

	job, err := h.status.Query(jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found",
			})
			return
		}
		h.logger.Error("Failed to query job status",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to query job status",
		})
		return
	}

	c.JSON(http.StatusOK, dto.NewJobStatusResponse(job))
}

// GetAsset handles GET /assets/:job_id/:filename
// Serves a generated asset file from the local asset store.
func (h *AvatarHandler) GetAsset(c *gin.Context) {
	jobID := c.Param("job_id")
	filename := c.Param("filename")

	path, err := h.assets.Path(jobID, filename)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Asset not found",
			})
			return
		}
		h.logger.Error("Failed to resolve asset",
			slog.String("job_id", jobID),
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to resolve asset",
		})
		return
	}

	c.File(path)
}

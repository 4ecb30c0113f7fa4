package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mirrorworld/avatar-backend/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "avatar-backend",
		})
	})

	avatarHandler := handler.NewAvatarHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// POST /api/v1/process-avatar - Start avatar generation
		v1.POST("/process-avatar", avatarHandler.ProcessAvatar)

		// GET /api/v1/status/:job_id - Poll job status
		v1.GET("/status/:job_id", avatarHandler.GetStatus)
	}

	// GET /assets/:job_id/:filename - Serve generated assets
	r.GET("/assets/:job_id/:filename", avatarHandler.GetAsset)

	return r
}

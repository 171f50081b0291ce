package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yourusername/vidfetch-go/api/handlers"
	"github.com/yourusername/vidfetch-go/api/middleware"
	"github.com/yourusername/vidfetch-go/internal/app"
	"github.com/yourusername/vidfetch-go/internal/infrastructure"
	"go.uber.org/zap"
)

// SetupRouter sets up the HTTP router
func SetupRouter(
	pipeline *app.Pipeline,
	store *infrastructure.FileStore,
	downloadDir string,
	logger *zap.Logger,
) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(downloadDir)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Live progress feed; the pipeline mirrors every job event here
	progressHandler := handlers.NewProgressWebSocketHandler(logger)
	pipeline.SetEventSink(progressHandler.Broadcast)
	router.GET("/ws/progress", progressHandler.HandleWebSocket)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		videoHandler := handlers.NewVideoHandler(pipeline, store, logger)
		videos := v1.Group("/videos")
		{
			videos.POST("", videoHandler.StartDownload)
			videos.GET("", videoHandler.ListHistory)
			videos.GET("/validate", videoHandler.ValidateURL)
			videos.GET("/stats", videoHandler.GetStats)
			videos.GET("/:id", videoHandler.GetJob)
		}

		files := v1.Group("/files")
		{
			files.GET("", videoHandler.ListFiles)
			files.DELETE("", videoHandler.DeleteFile)
		}
	}

	return router
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/vidfetch-go/internal/app"
	"github.com/yourusername/vidfetch-go/internal/domain"
	"github.com/yourusername/vidfetch-go/internal/infrastructure"
	"go.uber.org/zap"
)

// VideoHandler handles video download HTTP requests
type VideoHandler struct {
	pipeline *app.Pipeline
	store    *infrastructure.FileStore
	logger   *zap.Logger
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(pipeline *app.Pipeline, store *infrastructure.FileStore, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		pipeline: pipeline,
		store:    store,
		logger:   logger,
	}
}

// StartDownload handles POST /api/v1/videos
func (h *VideoHandler) StartDownload(c *gin.Context) {
	var req domain.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobID, result := h.pipeline.DownloadVideo(req.URL, req.Quality)
	if !result.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": result.Message})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"id":       jobID,
		"platform": domain.DetectPlatform(req.URL),
		"message":  result.Message,
	})
}

// ValidateURL handles GET /api/v1/videos/validate
func (h *VideoHandler) ValidateURL(c *gin.Context) {
	url := c.Query("url")

	result := domain.ValidateURL(url)
	c.JSON(http.StatusOK, gin.H{
		"valid":    result.Valid,
		"message":  result.Message,
		"platform": domain.DetectPlatform(url),
	})
}

// GetJob handles GET /api/v1/videos/:id
func (h *VideoHandler) GetJob(c *gin.Context) {
	id := c.Param("id")

	download, err := h.pipeline.Job(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "download not found"})
		return
	}

	c.JSON(http.StatusOK, download)
}

// ListHistory handles GET /api/v1/videos
func (h *VideoHandler) ListHistory(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	downloads, err := h.pipeline.History(limit)
	if err != nil {
		h.logger.Error("Failed to list history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, downloads)
}

// GetStats handles GET /api/v1/videos/stats
func (h *VideoHandler) GetStats(c *gin.Context) {
	stats, err := h.pipeline.Stats()
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListFiles handles GET /api/v1/files
func (h *VideoHandler) ListFiles(c *gin.Context) {
	files, err := h.store.ListDownloads()
	if err != nil {
		h.logger.Error("Failed to list files", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, files)
}

// DeleteFile handles DELETE /api/v1/files
func (h *VideoHandler) DeleteFile(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path query parameter is required"})
		return
	}

	if err := h.store.Delete(path); err != nil {
		h.logger.Error("Failed to delete file", zap.String("path", path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}

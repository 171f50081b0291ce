package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	downloadDir string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(downloadDir string) *HealthHandler {
	return &HealthHandler{
		downloadDir: downloadDir,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Storage struct {
		Writable bool `json:"writable"`
	} `json:"storage"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}
	response.Storage.Writable = h.storageWritable()

	c.JSON(http.StatusOK, response)
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.storageWritable() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "download directory not writable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *HealthHandler) storageWritable() bool {
	if err := os.MkdirAll(h.downloadDir, 0755); err != nil {
		return false
	}
	probe, err := os.CreateTemp(h.downloadDir, ".healthcheck-*")
	if err != nil {
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	return true
}

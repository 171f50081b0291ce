package domain

import (
	"time"

	"github.com/google/uuid"
)

// DownloadStatus represents the current status of a download
type DownloadStatus string

const (
	StatusResolving   DownloadStatus = "resolving"
	StatusDownloading DownloadStatus = "downloading"
	StatusCompleted   DownloadStatus = "completed"
	StatusFailed      DownloadStatus = "failed"
)

// Download represents one acquisition job and its history row
type Download struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	URL          string         `json:"url" gorm:"not null"`
	Platform     Platform       `json:"platform" gorm:"not null;index"`
	Quality      string         `json:"quality"`
	Status       DownloadStatus `json:"status" gorm:"not null;index"`
	Percent      int            `json:"percent" gorm:"default:0"`
	DirectURL    string         `json:"direct_url,omitempty"`
	FilePath     string         `json:"file_path,omitempty"`
	FileSize     int64          `json:"file_size,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
}

// NewDownload creates a new acquisition job for a validated URL
func NewDownload(url, quality string) *Download {
	return &Download{
		ID:        uuid.New().String(),
		URL:       url,
		Platform:  DetectPlatform(url),
		Quality:   NormalizeQuality(quality),
		Status:    StatusResolving,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// MarkDownloading records that resolution finished and streaming began
func (d *Download) MarkDownloading(directURL string) {
	d.Status = StatusDownloading
	d.DirectURL = directURL
	now := time.Now()
	d.StartedAt = &now
	d.UpdatedAt = now
}

// UpdateProgress records the latest completion percent
func (d *Download) UpdateProgress(percent int) {
	d.Percent = percent
	d.UpdatedAt = time.Now()
}

// MarkCompleted marks the download as completed
func (d *Download) MarkCompleted(filePath string, size int64) {
	d.Status = StatusCompleted
	d.FilePath = filePath
	d.FileSize = size
	d.Percent = 100
	now := time.Now()
	d.CompletedAt = &now
	d.UpdatedAt = now
}

// MarkFailed marks the download as failed with a user-facing message
func (d *Download) MarkFailed(message string) {
	d.Status = StatusFailed
	d.ErrorMessage = message
	d.UpdatedAt = time.Now()
}

// IsTerminal checks if the download reached a terminal state
func (d *Download) IsTerminal() bool {
	return d.Status == StatusCompleted || d.Status == StatusFailed
}

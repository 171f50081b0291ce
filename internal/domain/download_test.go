package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDownload(t *testing.T) {
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	download := NewDownload(url, "1080")

	assert.NotEmpty(t, download.ID)
	assert.Equal(t, url, download.URL)
	assert.Equal(t, PlatformYouTube, download.Platform)
	assert.Equal(t, "1080", download.Quality)
	assert.Equal(t, StatusResolving, download.Status)
	assert.Equal(t, 0, download.Percent)
}

func TestNewDownload_NormalizesQuality(t *testing.T) {
	download := NewDownload("https://www.youtube.com/watch?v=abc", "4k")
	assert.Equal(t, QualityDefault, download.Quality)
}

func TestDownload_MarkDownloading(t *testing.T) {
	download := NewDownload("https://www.tiktok.com/@user/video/123", "")

	download.MarkDownloading("https://cdn.example.com/v.mp4")

	assert.Equal(t, StatusDownloading, download.Status)
	assert.Equal(t, "https://cdn.example.com/v.mp4", download.DirectURL)
	assert.NotNil(t, download.StartedAt)
}

func TestDownload_MarkCompleted(t *testing.T) {
	download := NewDownload("https://www.tiktok.com/@user/video/123", "")
	filePath := "/downloads/tiktok_video_123.mp4"

	download.MarkCompleted(filePath, 2048)

	assert.Equal(t, StatusCompleted, download.Status)
	assert.Equal(t, filePath, download.FilePath)
	assert.Equal(t, int64(2048), download.FileSize)
	assert.Equal(t, 100, download.Percent)
	assert.NotNil(t, download.CompletedAt)
}

func TestDownload_MarkFailed(t *testing.T) {
	download := NewDownload("https://www.instagram.com/reel/abc/", "")

	download.MarkFailed(MsgNetworkError)

	assert.Equal(t, StatusFailed, download.Status)
	assert.Equal(t, MsgNetworkError, download.ErrorMessage)
}

func TestDownload_IsTerminal(t *testing.T) {
	download := NewDownload("https://www.facebook.com/watch/videos/123", "")

	assert.False(t, download.IsTerminal())

	download.Status = StatusDownloading
	assert.False(t, download.IsTerminal())

	download.Status = StatusCompleted
	assert.True(t, download.IsTerminal())

	download.Status = StatusFailed
	assert.True(t, download.IsTerminal())
}

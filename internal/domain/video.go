package domain

import "time"

// VideoRequest is the immutable input to the acquisition pipeline
type VideoRequest struct {
	URL     string `json:"url" binding:"required"`
	Quality string `json:"quality"`
}

// VideoInfo is the resolver result describing a downloadable video.
// DownloadURL is always a scheme-qualified absolute URL with no
// embedded JSON escapes by the time a resolver returns it.
type VideoInfo struct {
	Platform    Platform `json:"platform"`
	Title       string   `json:"title"`
	VideoID     string   `json:"video_id,omitempty"`
	DownloadURL string   `json:"download_url"`
	Quality     string   `json:"quality,omitempty"`
	Duration    int      `json:"duration,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
}

// DownloadedFile describes a completed file found on disk
type DownloadedFile struct {
	Filename   string    `json:"filename"`
	Path       string    `json:"path"`
	Platform   Platform  `json:"platform"`
	Title      string    `json:"title,omitempty"`
	Size       int64     `json:"size"`
	SizeHuman  string    `json:"size_human"`
	ModifiedAt time.Time `json:"modified_at"`
}

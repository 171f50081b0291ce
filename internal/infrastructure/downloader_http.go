package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/yourusername/vidfetch-go/internal/domain"
	"go.uber.org/zap"
)

const (
	copyBufferSize = 8 * 1024
	// unknown-length progress advances every 100 KiB and parks at 90
	// until the stream completes
	unknownLengthStep = 100 * 1024
	unknownLengthCap  = 90

	downloadUserAgent = "Mozilla/5.0 (Linux; Android 10; SM-G973F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Mobile Safari/537.36"
)

// HTTPDownloader streams a direct media URL to a local file with
// progress reporting and partial-file cleanup on failure
type HTTPDownloader struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewHTTPDownloader creates a downloader with separate connect and
// read timeouts. The configured User-Agent is used when set.
func NewHTTPDownloader(cfg *domain.DownloadConfig, logger *zap.Logger) *HTTPDownloader {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = downloadUserAgent
	}

	return &HTTPDownloader{
		client: &http.Client{
			Transport: &http.Transport{
				DialContext:           dialer.DialContext,
				ResponseHeaderTimeout: cfg.ReadTimeout,
				// Accept-Encoding is pinned to identity below, keep
				// the transport from silently re-adding gzip
				DisableCompression: true,
			},
		},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Download fetches directURL into destPath. Progress percentages are
// non-decreasing and only reported when they change. On any failure
// the partial file is removed before the error is returned.
func (d *HTTPDownloader) Download(ctx context.Context, directURL, destPath string, progress func(percent int)) error {
	if progress == nil {
		progress = func(int) {}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, directURL, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", "video/webm,video/ogg,video/*;q=0.9,application/ogg;q=0.7,audio/*;q=0.6,*/*;q=0.5")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "identity")
	req.Header.Set("Range", "bytes=0-")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("connect to video server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return &domain.HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        directURL,
		}
	}

	totalBytes := resp.ContentLength

	d.logger.Info("download started",
		zap.String("url", directURL),
		zap.String("dest", destPath),
		zap.Int64("content_length", totalBytes),
		zap.Int("status", resp.StatusCode))

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	written, copyErr := d.copyWithProgress(out, resp.Body, totalBytes, progress)

	closeErr := out.Close()
	if copyErr == nil {
		copyErr = closeErr
	}

	if copyErr == nil {
		copyErr = verifyNonEmpty(destPath)
	}

	if copyErr != nil {
		d.removePartial(destPath)
		return copyErr
	}

	d.logger.Info("download finished",
		zap.String("dest", destPath),
		zap.Int64("bytes", written))

	progress(100)
	return nil
}

// copyWithProgress streams the body to the file in 8 KiB chunks,
// emitting a percent only when it changes and never letting it go
// backwards
func (d *HTTPDownloader) copyWithProgress(out *os.File, body io.Reader, totalBytes int64, progress func(int)) (int64, error) {
	buf := make([]byte, copyBufferSize)

	var written int64
	lastPercent := -1
	lastStep := int64(-1)

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return written, writeErr
			}
			written += int64(n)

			if totalBytes > 0 {
				percent := int(written * 100 / totalBytes)
				if percent > 100 {
					percent = 100
				}
				if percent != lastPercent {
					lastPercent = percent
					progress(percent)
				}
			} else if step := written / unknownLengthStep; step != lastStep {
				lastStep = step
				percent := int(written / (10 * 1024))
				if percent > unknownLengthCap {
					percent = unknownLengthCap
				}
				if percent > lastPercent {
					lastPercent = percent
					progress(percent)
				}
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("read video stream: %w", readErr)
		}
	}
}

func verifyNonEmpty(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("verify output file: %w", err)
	}
	if fi.Size() == 0 {
		return domain.ErrEmptyFile
	}
	return nil
}

// removePartial deletes a partial download. Cleanup failures are
// logged, never surfaced.
func (d *HTTPDownloader) removePartial(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		d.logger.Warn("failed to remove partial file",
			zap.String("path", path),
			zap.Error(err))
	}
}

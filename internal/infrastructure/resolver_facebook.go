package infrastructure

import (
	"context"
	"fmt"
	"regexp"

	"github.com/yourusername/vidfetch-go/internal/domain"
	"go.uber.org/zap"
)

var (
	facebookVideoIDPattern = regexp.MustCompile(`facebook\.com.*?/videos/(\d+)`)
	facebookHDPattern      = regexp.MustCompile(`"browser_native_hd_url":"([^"]+)"`)
	facebookSDPattern      = regexp.MustCompile(`"browser_native_sd_url":"([^"]+)"`)
)

// FacebookResolver scrapes the video page itself for the browser
// native media URLs, preferring HD over SD
type FacebookResolver struct {
	client *extractionClient
	logger *zap.Logger
}

// NewFacebookResolver creates a Facebook resolver
func NewFacebookResolver(cfg *domain.ResolverConfig, logger *zap.Logger) *FacebookResolver {
	return &FacebookResolver{
		client: newExtractionClient(cfg.RequestTimeout, logger),
		logger: logger,
	}
}

// Platform returns the platform this resolver handles
func (r *FacebookResolver) Platform() domain.Platform {
	return domain.PlatformFacebook
}

// Resolve GETs the original page and scans for the HD URL, falling
// back to the SD URL when HD is absent
func (r *FacebookResolver) Resolve(ctx context.Context, req *domain.VideoRequest) (*domain.VideoInfo, error) {
	videoID := firstMatch(facebookVideoIDPattern, req.URL)
	if videoID == "" {
		return nil, fmt.Errorf("facebook: no video id in %q: %w", req.URL, domain.ErrUnresolved)
	}

	body, err := r.client.fetch(ctx, req.URL)
	if err != nil {
		r.logger.Debug("facebook page fetch failed",
			zap.String("video_id", videoID),
			zap.Error(err))
		return nil, fmt.Errorf("facebook: page fetch failed for %s: %w", videoID, domain.ErrUnresolved)
	}

	videoURL := firstMatch(facebookHDPattern, body)
	if videoURL == "" {
		videoURL = firstMatch(facebookSDPattern, body)
	}
	if videoURL == "" {
		return nil, fmt.Errorf("facebook: no media URL for %s: %w", videoID, domain.ErrUnresolved)
	}

	return &domain.VideoInfo{
		Platform:    domain.PlatformFacebook,
		Title:       "Facebook_" + videoID,
		VideoID:     videoID,
		DownloadURL: EnsureScheme(UnescapeEmbeddedURL(videoURL)),
	}, nil
}

package infrastructure

import (
	"context"
	"fmt"
	"regexp"

	"github.com/yourusername/vidfetch-go/internal/domain"
	"go.uber.org/zap"
)

var (
	youtubeIDPattern   = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([\w-]+)`)
	youtubeHrefMP4     = regexp.MustCompile(`href="([^"]*\.mp4[^"]*)"`)
	youtubeDownloadURL = regexp.MustCompile(`"download_url":"([^"]+)"`)
)

// YouTubeResolver extracts direct media URLs for YouTube videos by
// querying two extraction endpoints in order
type YouTubeResolver struct {
	client      *extractionClient
	primaryURL  string
	fallbackURL string
	logger      *zap.Logger
}

// NewYouTubeResolver creates a YouTube resolver against the configured endpoints
func NewYouTubeResolver(cfg *domain.ResolverConfig, logger *zap.Logger) *YouTubeResolver {
	return &YouTubeResolver{
		client:      newExtractionClient(cfg.RequestTimeout, logger),
		primaryURL:  cfg.YouTubePrimary,
		fallbackURL: cfg.YouTubeFallback,
		logger:      logger,
	}
}

// Platform returns the platform this resolver handles
func (r *YouTubeResolver) Platform() domain.Platform {
	return domain.PlatformYouTube
}

// Resolve tries the primary endpoint's mp4 href scan first, then the
// fallback endpoint's download_url JSON field
func (r *YouTubeResolver) Resolve(ctx context.Context, req *domain.VideoRequest) (*domain.VideoInfo, error) {
	videoID := firstMatch(youtubeIDPattern, req.URL)
	if videoID == "" {
		return nil, fmt.Errorf("youtube: no video id in %q: %w", req.URL, domain.ErrUnresolved)
	}

	if url := r.tryPrimary(ctx, videoID); url != "" {
		return r.info(videoID, url, req.Quality), nil
	}

	if url := r.tryFallback(ctx, videoID, req.Quality); url != "" {
		return r.info(videoID, url, req.Quality), nil
	}

	return nil, fmt.Errorf("youtube: all strategies failed for %s: %w", videoID, domain.ErrUnresolved)
}

func (r *YouTubeResolver) tryPrimary(ctx context.Context, videoID string) string {
	body, err := r.client.fetch(ctx, r.primaryURL+videoID)
	if err != nil {
		r.logger.Debug("youtube primary strategy failed",
			zap.String("video_id", videoID),
			zap.Error(err))
		return ""
	}

	url := firstMatch(youtubeHrefMP4, body)
	if url == "" {
		return ""
	}
	return EnsureScheme(UnescapeEmbeddedURL(url))
}

func (r *YouTubeResolver) tryFallback(ctx context.Context, videoID, quality string) string {
	height := domain.NormalizeQuality(quality)
	endpoint := fmt.Sprintf("%s?url=https://www.youtube.com/watch?v=%s&f=%sp", r.fallbackURL, videoID, height)

	body, err := r.client.fetch(ctx, endpoint)
	if err != nil {
		r.logger.Debug("youtube fallback strategy failed",
			zap.String("video_id", videoID),
			zap.Error(err))
		return ""
	}

	url := firstMatch(youtubeDownloadURL, body)
	if url == "" {
		return ""
	}
	return EnsureScheme(UnescapeEmbeddedURL(url))
}

func (r *YouTubeResolver) info(videoID, url, quality string) *domain.VideoInfo {
	return &domain.VideoInfo{
		Platform:    domain.PlatformYouTube,
		Title:       "YouTube_" + videoID,
		VideoID:     videoID,
		DownloadURL: url,
		Quality:     domain.NormalizeQuality(quality),
	}
}

package infrastructure

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/yourusername/vidfetch-go/internal/domain"
	"go.uber.org/zap"
)

var (
	tiktokVideoIDPattern = regexp.MustCompile(`tiktok\.com.*?/video/(\d+)`)
	tiktokLooseIDPattern = regexp.MustCompile(`tiktok\.com.*?/(\d+)`)
	tiktokPlayPattern    = regexp.MustCompile(`"play":"([^"]+)"`)
)

// TikTokResolver resolves TikTok videos through a third-party
// extraction endpoint, expanding vm.tiktok.com share links first
type TikTokResolver struct {
	client   *extractionClient
	expander domain.URLExpander
	endpoint string
	logger   *zap.Logger
}

// NewTikTokResolver creates a TikTok resolver
func NewTikTokResolver(cfg *domain.ResolverConfig, expander domain.URLExpander, logger *zap.Logger) *TikTokResolver {
	return &TikTokResolver{
		client:   newExtractionClient(cfg.RequestTimeout, logger),
		expander: expander,
		endpoint: cfg.TikTokEndpoint,
		logger:   logger,
	}
}

// Platform returns the platform this resolver handles
func (r *TikTokResolver) Platform() domain.Platform {
	return domain.PlatformTikTok
}

// Resolve expands the share link, extracts the numeric video id, then
// asks the extraction endpoint for the play URL
func (r *TikTokResolver) Resolve(ctx context.Context, req *domain.VideoRequest) (*domain.VideoInfo, error) {
	expanded := r.expander.Expand(ctx, req.URL)

	videoID := firstMatch(tiktokVideoIDPattern, expanded)
	if videoID == "" {
		videoID = firstMatch(tiktokLooseIDPattern, expanded)
	}
	if videoID == "" {
		return nil, fmt.Errorf("tiktok: no video id in %q: %w", expanded, domain.ErrUnresolved)
	}

	body, err := r.client.fetch(ctx, r.endpoint+"?url="+url.QueryEscape(expanded))
	if err != nil {
		r.logger.Debug("tiktok extraction failed",
			zap.String("video_id", videoID),
			zap.Error(err))
		return nil, fmt.Errorf("tiktok: extraction failed for %s: %w", videoID, domain.ErrUnresolved)
	}

	playURL := firstMatch(tiktokPlayPattern, body)
	if playURL == "" {
		return nil, fmt.Errorf("tiktok: no play URL for %s: %w", videoID, domain.ErrUnresolved)
	}

	return &domain.VideoInfo{
		Platform:    domain.PlatformTikTok,
		Title:       "TikTok_" + videoID,
		VideoID:     videoID,
		DownloadURL: EnsureScheme(UnescapeEmbeddedURL(playURL)),
	}, nil
}

package infrastructure

import (
	"context"
	"fmt"
	"regexp"

	"github.com/yourusername/vidfetch-go/internal/domain"
	"go.uber.org/zap"
)

var (
	instagramPostPattern = regexp.MustCompile(`instagram\.com/(?:p|reel|tv)/(\w+)`)
	instagramVideoURL    = regexp.MustCompile(`"video_url":"([^"]+)"`)
)

// InstagramResolver resolves Instagram posts, reels, and tv clips by
// requesting the post's JSON representation
type InstagramResolver struct {
	client *extractionClient
	logger *zap.Logger
}

// NewInstagramResolver creates an Instagram resolver
func NewInstagramResolver(cfg *domain.ResolverConfig, logger *zap.Logger) *InstagramResolver {
	return &InstagramResolver{
		client: newExtractionClient(cfg.RequestTimeout, logger),
		logger: logger,
	}
}

// Platform returns the platform this resolver handles
func (r *InstagramResolver) Platform() domain.Platform {
	return domain.PlatformInstagram
}

// Resolve fetches the post with a JSON-indicating query string and
// scans for the embedded video_url field
func (r *InstagramResolver) Resolve(ctx context.Context, req *domain.VideoRequest) (*domain.VideoInfo, error) {
	postID := firstMatch(instagramPostPattern, req.URL)
	if postID == "" {
		return nil, fmt.Errorf("instagram: no post id in %q: %w", req.URL, domain.ErrUnresolved)
	}

	body, err := r.client.fetch(ctx, req.URL+"?__a=1&__d=dis")
	if err != nil {
		r.logger.Debug("instagram extraction failed",
			zap.String("post_id", postID),
			zap.Error(err))
		return nil, fmt.Errorf("instagram: extraction failed for %s: %w", postID, domain.ErrUnresolved)
	}

	videoURL := firstMatch(instagramVideoURL, body)
	if videoURL == "" {
		return nil, fmt.Errorf("instagram: no video URL for %s: %w", postID, domain.ErrUnresolved)
	}

	return &domain.VideoInfo{
		Platform:    domain.PlatformInstagram,
		Title:       "Instagram_" + postID,
		VideoID:     postID,
		DownloadURL: EnsureScheme(UnescapeEmbeddedURL(videoURL)),
	}, nil
}

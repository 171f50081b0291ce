package infrastructure

import (
	"context"

	"github.com/yourusername/vidfetch-go/internal/domain"
)

// sampleVideos maps each platform to a known-good public MP4 so the
// whole pipeline can be exercised without live extraction endpoints
var sampleVideos = map[domain.Platform]string{
	domain.PlatformYouTube:   "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
	domain.PlatformTikTok:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
	domain.PlatformInstagram: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
	domain.PlatformFacebook:  "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerEscapes.mp4",
	domain.PlatformGeneric:   "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/Sintel.mp4",
}

// SampleResolver serves fixed sample media for any platform. It backs
// the sample mode used for demos and end-to-end testing.
type SampleResolver struct {
	platform domain.Platform
}

// NewSampleResolver creates a sample resolver for one platform
func NewSampleResolver(platform domain.Platform) *SampleResolver {
	return &SampleResolver{platform: platform}
}

// Platform returns the platform this resolver handles
func (r *SampleResolver) Platform() domain.Platform {
	return r.platform
}

// Resolve returns the sample video for the resolver's platform
func (r *SampleResolver) Resolve(_ context.Context, _ *domain.VideoRequest) (*domain.VideoInfo, error) {
	return &domain.VideoInfo{
		Platform:    r.platform,
		Title:       "Sample_" + string(r.platform),
		DownloadURL: sampleVideos[r.platform],
	}, nil
}

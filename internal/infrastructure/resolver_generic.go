package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/vidfetch-go/internal/domain"
)

// GenericResolver assumes the input URL already points at a direct
// media object and passes it through untouched
type GenericResolver struct{}

// NewGenericResolver creates the passthrough resolver
func NewGenericResolver() *GenericResolver {
	return &GenericResolver{}
}

// Platform returns the platform this resolver handles
func (r *GenericResolver) Platform() domain.Platform {
	return domain.PlatformGeneric
}

// Resolve passes the URL through with a timestamped title
func (r *GenericResolver) Resolve(_ context.Context, req *domain.VideoRequest) (*domain.VideoInfo, error) {
	return &domain.VideoInfo{
		Platform:    domain.PlatformGeneric,
		Title:       fmt.Sprintf("Video_%d", time.Now().UnixMilli()),
		DownloadURL: req.URL,
	}, nil
}

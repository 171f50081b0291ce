package infrastructure

import (
	"context"
	"fmt"

	"github.com/yourusername/vidfetch-go/internal/domain"
	"go.uber.org/zap"
)

// ResolverRegistry dispatches a request to the resolver matching its
// classified platform
type ResolverRegistry struct {
	resolvers map[domain.Platform]domain.Resolver
	logger    *zap.Logger
}

// NewResolverRegistry builds the registry for live extraction
func NewResolverRegistry(cfg *domain.ResolverConfig, logger *zap.Logger) *ResolverRegistry {
	expander := NewRedirectExpander(cfg.ExpandTimeout, logger)

	registry := &ResolverRegistry{
		resolvers: make(map[domain.Platform]domain.Resolver),
		logger:    logger,
	}

	if cfg.SampleMode {
		for _, p := range []domain.Platform{
			domain.PlatformYouTube,
			domain.PlatformTikTok,
			domain.PlatformInstagram,
			domain.PlatformFacebook,
			domain.PlatformGeneric,
		} {
			registry.Register(NewSampleResolver(p))
		}
		return registry
	}

	registry.Register(NewYouTubeResolver(cfg, logger))
	registry.Register(NewTikTokResolver(cfg, expander, logger))
	registry.Register(NewInstagramResolver(cfg, logger))
	registry.Register(NewFacebookResolver(cfg, logger))
	registry.Register(NewGenericResolver())

	return registry
}

// Register adds or replaces the resolver for its platform
func (r *ResolverRegistry) Register(resolver domain.Resolver) {
	r.resolvers[resolver.Platform()] = resolver
}

// Resolve classifies the URL and delegates to the matching resolver
func (r *ResolverRegistry) Resolve(ctx context.Context, req *domain.VideoRequest) (*domain.VideoInfo, error) {
	platform := domain.DetectPlatform(req.URL)

	resolver, ok := r.resolvers[platform]
	if !ok {
		return nil, fmt.Errorf("no resolver for platform %s: %w", platform, domain.ErrUnresolved)
	}

	r.logger.Debug("resolving video URL",
		zap.String("url", req.URL),
		zap.String("platform", string(platform)))

	info, err := resolver.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	if info.DownloadURL == "" {
		return nil, fmt.Errorf("resolver for %s returned empty URL: %w", platform, domain.ErrUnresolved)
	}

	r.logger.Info("resolved video URL",
		zap.String("platform", string(platform)),
		zap.String("title", info.Title))

	return info, nil
}

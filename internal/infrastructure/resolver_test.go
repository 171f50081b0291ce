package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/vidfetch-go/internal/domain"
	"go.uber.org/zap"
)

func testResolverConfig() *domain.ResolverConfig {
	cfg := domain.DefaultConfig().Resolver
	cfg.RequestTimeout = 2 * time.Second
	cfg.ExpandTimeout = 2 * time.Second
	return &cfg
}

func TestYouTubeResolver_PrimaryStrategy(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "abc_123")
		w.Write([]byte(`<html><a href="https://cdn.example/v.mp4?sig=1">Download</a></html>`))
	}))
	defer primary.Close()

	cfg := testResolverConfig()
	cfg.YouTubePrimary = primary.URL + "/api/button/videos/"

	resolver := NewYouTubeResolver(cfg, zap.NewNop())

	info, err := resolver.Resolve(context.Background(), &domain.VideoRequest{URL: "https://youtu.be/abc_123", Quality: "720"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/v.mp4?sig=1", info.DownloadURL)
	assert.Equal(t, "YouTube_abc_123", info.Title)
	assert.Equal(t, "abc_123", info.VideoID)
	assert.Equal(t, domain.PlatformYouTube, info.Platform)
}

func TestYouTubeResolver_FallbackStrategy(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "f=720p")
		w.Write([]byte(`{"download_url":"https:\u002F\u002Fcdn.example\u002Fv.mp4"}`))
	}))
	defer fallback.Close()

	cfg := testResolverConfig()
	cfg.YouTubePrimary = primary.URL + "/api/button/videos/"
	cfg.YouTubeFallback = fallback.URL + "/api/button/"

	resolver := NewYouTubeResolver(cfg, zap.NewNop())

	info, err := resolver.Resolve(context.Background(), &domain.VideoRequest{URL: "https://youtu.be/abc_123", Quality: "720"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/v.mp4", info.DownloadURL)
}

func TestYouTubeResolver_AllStrategiesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testResolverConfig()
	cfg.YouTubePrimary = server.URL + "/api/button/videos/"
	cfg.YouTubeFallback = server.URL + "/api/button/"

	resolver := NewYouTubeResolver(cfg, zap.NewNop())

	_, err := resolver.Resolve(context.Background(), &domain.VideoRequest{URL: "https://youtu.be/abc_123"})
	assert.ErrorIs(t, err, domain.ErrUnresolved)
}

func TestYouTubeResolver_NoVideoID(t *testing.T) {
	resolver := NewYouTubeResolver(testResolverConfig(), zap.NewNop())

	_, err := resolver.Resolve(context.Background(), &domain.VideoRequest{URL: "https://www.youtube.com/feed/trending"})
	assert.ErrorIs(t, err, domain.ErrUnresolved)
}

func TestTikTokResolver_ResolvesPlayURL(t *testing.T) {
	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("url"))
		w.Write([]byte(`{"code":0,"data":{"play":"https:\u002F\u002Fcdn\u002Fv.mp4"}}`))
	}))
	defer endpoint.Close()

	cfg := testResolverConfig()
	cfg.TikTokEndpoint = endpoint.URL + "/api/"

	resolver := NewTikTokResolver(cfg, NewRedirectExpander(cfg.ExpandTimeout, zap.NewNop()), zap.NewNop())

	info, err := resolver.Resolve(context.Background(), &domain.VideoRequest{URL: "https://www.tiktok.com/@u/video/7200000000000000000"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/v.mp4", info.DownloadURL)
	assert.Equal(t, "TikTok_7200000000000000000", info.Title)
}

func TestTikTokResolver_ExpandsShortLink(t *testing.T) {
	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"play":"https://cdn/v.mp4"}}`))
	}))
	defer endpoint.Close()

	short := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://www.tiktok.com/@u/video/7300000000000000000")
		w.WriteHeader(http.StatusMovedPermanently)
	}))
	defer short.Close()

	cfg := testResolverConfig()
	cfg.TikTokEndpoint = endpoint.URL + "/api/"

	resolver := NewTikTokResolver(cfg, NewRedirectExpander(cfg.ExpandTimeout, zap.NewNop()), zap.NewNop())

	info, err := resolver.Resolve(context.Background(), &domain.VideoRequest{URL: short.URL + "/ZMabcdef/"})
	require.NoError(t, err)
	assert.Equal(t, "7300000000000000000", info.VideoID)
}

func TestTikTokResolver_LooseIDFallback(t *testing.T) {
	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"play":"https://cdn/v.mp4"}}`))
	}))
	defer endpoint.Close()

	cfg := testResolverConfig()
	cfg.TikTokEndpoint = endpoint.URL + "/api/"

	resolver := NewTikTokResolver(cfg, NewRedirectExpander(cfg.ExpandTimeout, zap.NewNop()), zap.NewNop())

	info, err := resolver.Resolve(context.Background(), &domain.VideoRequest{URL: "https://www.tiktok.com/v/7400000000000000000"})
	require.NoError(t, err)
	assert.Equal(t, "7400000000000000000", info.VideoID)
}

func TestTikTokResolver_NoPlayURL(t *testing.T) {
	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":-1,"msg":"video not found"}`))
	}))
	defer endpoint.Close()

	cfg := testResolverConfig()
	cfg.TikTokEndpoint = endpoint.URL + "/api/"

	resolver := NewTikTokResolver(cfg, NewRedirectExpander(cfg.ExpandTimeout, zap.NewNop()), zap.NewNop())

	_, err := resolver.Resolve(context.Background(), &domain.VideoRequest{URL: "https://www.tiktok.com/@u/video/7200000000000000000"})
	assert.ErrorIs(t, err, domain.ErrUnresolved)
}

func TestInstagramResolver_ResolvesVideoURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("__a"))
		w.Write([]byte(`{"items":[{"video_url":"https://ig-cdn.example/v.mp4?a=1&b=2"}]}`))
	}))
	defer server.Close()

	resolver := NewInstagramResolver(testResolverConfig(), zap.NewNop())

	// the resolver fetches the request URL itself with a JSON query,
	// so the test URL must both carry the post id and hit the server
	info, err := resolver.Resolve(context.Background(), &domain.VideoRequest{URL: server.URL + "/instagram.com/reel/Cabcdefgh/"})
	require.NoError(t, err)
	assert.Equal(t, "https://ig-cdn.example/v.mp4?a=1&b=2", info.DownloadURL)
	assert.Equal(t, "Instagram_Cabcdefgh", info.Title)
}

func TestInstagramResolver_NoPostID(t *testing.T) {
	resolver := NewInstagramResolver(testResolverConfig(), zap.NewNop())

	_, err := resolver.Resolve(context.Background(), &domain.VideoRequest{URL: "https://www.instagram.com/someuser/"})
	assert.ErrorIs(t, err, domain.ErrUnresolved)
}

func TestFacebookResolver_PrefersHD(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"browser_native_sd_url":"https:\/\/fb-cdn\/sd.mp4","browser_native_hd_url":"https:\/\/fb-cdn\/hd.mp4"}`))
	}))
	defer server.Close()

	resolver := NewFacebookResolver(testResolverConfig(), zap.NewNop())

	info, err := resolver.Resolve(context.Background(), &domain.VideoRequest{URL: server.URL + "/facebook.com/user/videos/123456/"})
	require.NoError(t, err)
	assert.Equal(t, "https://fb-cdn/hd.mp4", info.DownloadURL)
	assert.Equal(t, "Facebook_123456", info.Title)
}

func TestFacebookResolver_FallsBackToSD(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"browser_native_sd_url":"https:\/\/fb-cdn\/sd.mp4?q=100%25"}`))
	}))
	defer server.Close()

	resolver := NewFacebookResolver(testResolverConfig(), zap.NewNop())

	info, err := resolver.Resolve(context.Background(), &domain.VideoRequest{URL: server.URL + "/facebook.com/user/videos/123456/"})
	require.NoError(t, err)
	assert.Equal(t, "https://fb-cdn/sd.mp4?q=100%25", info.DownloadURL)
}

func TestGenericResolver_Passthrough(t *testing.T) {
	resolver := NewGenericResolver()

	info, err := resolver.Resolve(context.Background(), &domain.VideoRequest{URL: "https://example.com/video.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/video.mp4", info.DownloadURL)
	assert.Equal(t, domain.PlatformGeneric, info.Platform)
	assert.Contains(t, info.Title, "Video_")
}

func TestSampleResolver_ServesFixedMedia(t *testing.T) {
	resolver := NewSampleResolver(domain.PlatformYouTube)

	info, err := resolver.Resolve(context.Background(), &domain.VideoRequest{URL: "https://youtu.be/anything"})
	require.NoError(t, err)
	assert.Contains(t, info.DownloadURL, "BigBuckBunny.mp4")
}

func TestRegistry_DispatchesByPlatform(t *testing.T) {
	registry := NewResolverRegistry(testResolverConfig(), zap.NewNop())
	registry.Register(NewSampleResolver(domain.PlatformYouTube))

	info, err := registry.Resolve(context.Background(), &domain.VideoRequest{URL: "https://youtu.be/abc"})
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformYouTube, info.Platform)
	assert.Contains(t, info.DownloadURL, "BigBuckBunny.mp4")
}

func TestRegistry_SampleMode(t *testing.T) {
	cfg := testResolverConfig()
	cfg.SampleMode = true

	registry := NewResolverRegistry(cfg, zap.NewNop())

	info, err := registry.Resolve(context.Background(), &domain.VideoRequest{URL: "https://www.tiktok.com/@u/video/1"})
	require.NoError(t, err)
	assert.Contains(t, info.DownloadURL, "ElephantsDream.mp4")
}

package infrastructure

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RedirectExpander resolves shortened share links by issuing a single
// HEAD request with redirects disabled and reading the Location header
type RedirectExpander struct {
	client *http.Client
	logger *zap.Logger
}

// NewRedirectExpander creates an expander with the given per-request timeout
func NewRedirectExpander(timeout time.Duration, logger *zap.Logger) *RedirectExpander {
	return &RedirectExpander{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger,
	}
}

// Expand follows one redirect hop. On any failure, or when the
// response carries no Location, the input URL is returned unchanged so
// resolution can proceed with what the caller already has.
func (e *RedirectExpander) Expand(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return url
	}
	// short-link hosts serve different responses to non-browser clients
	req.Header.Set("User-Agent", extractionUserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Debug("short URL expansion failed, using original",
			zap.String("url", url),
			zap.Error(err))
		return url
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	if strings.TrimSpace(location) == "" {
		return url
	}

	e.logger.Debug("expanded short URL",
		zap.String("from", url),
		zap.String("to", location))

	return location
}

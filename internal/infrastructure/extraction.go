package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// bodyScanLimit caps how much of an extraction response is read.
// Player pages embed the media URL early, the rest is noise.
const bodyScanLimit = 100 * 1024

// extractionUserAgent imitates a mobile browser so extraction
// endpoints serve the same markup they serve real devices
const extractionUserAgent = "Mozilla/5.0 (Linux; Android 10; SM-G973F) AppleWebKit/537.36"

// extractionClient fetches extraction endpoint responses and scans
// them with per-strategy regexes
type extractionClient struct {
	client *http.Client
	logger *zap.Logger
}

func newExtractionClient(timeout time.Duration, logger *zap.Logger) *extractionClient {
	return &extractionClient{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// fetch GETs the URL and returns at most bodyScanLimit bytes of the
// response. Non-2xx statuses and transport failures both come back as
// errors so strategy chains can move on to their fallback.
func (c *extractionClient) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build extraction request: %w", err)
	}
	req.Header.Set("User-Agent", extractionUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("extraction request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("extraction endpoint returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, bodyScanLimit))
	if err != nil {
		return "", fmt.Errorf("read extraction response: %w", err)
	}

	return string(body), nil
}

// firstMatch runs the pattern against the body and returns the first
// capture group, trimmed. Empty string means no usable match.
func firstMatch(pattern *regexp.Regexp, body string) string {
	m := pattern.FindStringSubmatch(body)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

package domain

import "context"

// Resolver turns a page URL into a direct media location for one
// platform. Implementations try their strategies in declared order
// and return ErrUnresolved when none produces a download URL.
type Resolver interface {
	// Resolve returns video info with an absolute DownloadURL,
	// or an error wrapping ErrUnresolved
	Resolve(ctx context.Context, req *VideoRequest) (*VideoInfo, error)

	// Platform returns the platform this resolver handles
	Platform() Platform
}

// URLExpander follows one redirect hop for shortened share links
type URLExpander interface {
	// Expand returns the redirect target, or the input URL unchanged
	// when the server does not redirect or the request fails
	Expand(ctx context.Context, url string) string
}

// VideoDownloader streams a direct media URL to disk
type VideoDownloader interface {
	// Download fetches directURL into destPath, reporting progress
	// percentages through the callback. On failure the partial file
	// is removed before the error returns.
	Download(ctx context.Context, directURL, destPath string, progress func(percent int)) error
}

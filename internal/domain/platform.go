package domain

import "strings"

// Platform represents the source platform of a video URL
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformGeneric   Platform = "generic"
)

// supportedHosts are the host substrings accepted by ValidateURL
var supportedHosts = []string{
	"youtube.com",
	"youtu.be",
	"tiktok.com",
	"vm.tiktok.com",
	"instagram.com",
	"facebook.com",
	"fb.watch",
}

// DetectPlatform classifies a URL by case-insensitive substring match.
// First match wins; unknown hosts fall through to PlatformGeneric.
// Pure function, no I/O.
func DetectPlatform(url string) Platform {
	url = strings.ToLower(url)
	switch {
	case strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be"):
		return PlatformYouTube
	case strings.Contains(url, "tiktok.com") || strings.Contains(url, "vm.tiktok.com"):
		return PlatformTikTok
	case strings.Contains(url, "instagram.com"):
		return PlatformInstagram
	case strings.Contains(url, "facebook.com") || strings.Contains(url, "fb.watch"):
		return PlatformFacebook
	default:
		return PlatformGeneric
	}
}

// ValidationResult is the outcome of ValidateURL
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// ValidateRequest gates a download request: the URL must be non-empty
// and carry an http scheme. Unknown hosts pass and run as generic
// downloads.
func ValidateRequest(rawURL string) ValidationResult {
	trimmed := strings.ToLower(strings.TrimSpace(rawURL))

	if trimmed == "" {
		return ValidationResult{false, "Please enter a video URL"}
	}

	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return ValidationResult{false, "URL must start with http:// or https://"}
	}

	return ValidationResult{true, "URL is valid"}
}

// ValidateURL is the pre-check for input forms: on top of
// ValidateRequest it requires a supported platform host substring.
// Messages are user-facing.
func ValidateURL(rawURL string) ValidationResult {
	if result := ValidateRequest(rawURL); !result.Valid {
		return result
	}

	trimmed := strings.ToLower(strings.TrimSpace(rawURL))
	for _, host := range supportedHosts {
		if strings.Contains(trimmed, host) {
			return ValidationResult{true, "URL is valid"}
		}
	}

	return ValidationResult{false, "Unsupported platform. Currently supports YouTube, TikTok, Instagram, and Facebook."}
}

// Quality tokens recognised by the pipeline entry. Advisory only.
const (
	Quality1080    = "1080"
	Quality720     = "720"
	Quality480     = "480"
	QualityAudio   = "audio"
	QualityDefault = Quality720
)

// NormalizeQuality maps any unrecognised quality token to the default
func NormalizeQuality(quality string) string {
	switch quality {
	case Quality1080, Quality720, Quality480, QualityAudio:
		return quality
	default:
		return QualityDefault
	}
}

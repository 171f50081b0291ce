package infrastructure

import "strings"

// unescapeReplacer handles the escape sequences seen in embedded
// player JSON. Only these four are translated, anything else is
// passed through untouched.
var unescapeReplacer = strings.NewReplacer(
	`\u002F`, "/",
	`\u0025`, "%",
	`\u0026`, "&",
	`\/`, "/",
)

// UnescapeEmbeddedURL decodes a URL lifted out of a JSON document body
func UnescapeEmbeddedURL(s string) string {
	return unescapeReplacer.Replace(s)
}

// EnsureScheme prefixes https: when the URL is scheme-relative or
// missing a scheme entirely
func EnsureScheme(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return "https://" + url
}

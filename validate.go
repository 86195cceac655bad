package linkbook

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
)

// blockedSchemes are URI schemes rejected outright. Each one can execute
// script or reach local resources once rendered into an artifact.
var blockedSchemes = []string{"javascript", "data", "file", "vbscript", "about"}

// ValidateName checks that a link display name is a non-empty string.
func ValidateName(name string) Outcome {
	if strings.TrimSpace(name) == "" {
		return Reject("Name must be a non-empty string")
	}
	return Accept()
}

// ValidateURL syntactically validates a link target. Accepted forms are
// absolute http/https URLs with a host, and relative path references that
// exist on disk. Everything else is rejected with a reason naming the
// problem. No network traffic happens here.
func ValidateURL(rawURL string) Outcome {
	if strings.TrimSpace(rawURL) == "" {
		return Reject("URL must be a non-empty string")
	}
	// url.Parse errors on a bare "://"; check first so the reason stays precise.
	if strings.HasPrefix(rawURL, "://") {
		return Reject("Invalid URL scheme '': malformed URL with '://' but no scheme")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Reject(fmt.Sprintf("Invalid URL: %v", err))
	}

	// url.Parse lowercases the scheme, so mixed-case schemes match too.
	if slices.Contains(blockedSchemes, parsed.Scheme) {
		return Reject(fmt.Sprintf("Invalid URL scheme '%s': blocked for security", parsed.Scheme))
	}

	switch parsed.Scheme {
	case "":
		return validateRelative(rawURL, parsed)
	case "http", "https":
		if parsed.Host == "" {
			return Reject("URL must have a valid host")
		}
		return Accept()
	default:
		return Reject(fmt.Sprintf("Invalid URL scheme '%s': only http, https, or relative paths allowed", parsed.Scheme))
	}
}

// validateRelative handles scheme-less targets. Bare values that look like
// a domain are rejected so "example.com" cannot slip through as a relative
// path; genuine relative references must point at an existing file or
// directory.
func validateRelative(rawURL string, parsed *url.URL) Outcome {
	if !strings.HasPrefix(rawURL, "./") && !strings.HasPrefix(rawURL, "../") {
		first := rawURL
		if i := strings.IndexAny(first, "/?#"); i >= 0 {
			first = first[:i]
		}
		if looksLikeDomain(first) {
			return Reject("Invalid URL scheme '': looks like a domain without http:// or https://")
		}
	}

	// Fragment-only and query-only references have nothing to check on disk.
	if parsed.Path == "" {
		return Accept()
	}
	if _, err := os.Stat(parsed.Path); err != nil {
		return Reject(fmt.Sprintf("Local reference does not exist: %s", parsed.Path))
	}
	return Accept()
}

// looksLikeDomain reports whether s reads as a hostname: two or more
// non-empty dot-separated segments.
func looksLikeDomain(s string) bool {
	if !strings.Contains(s, ".") {
		return false
	}
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return true
}

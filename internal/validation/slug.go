package validation

import (
	"fmt"
	"strings"
)

// MaxSlugLength bounds slugs taken from page parameters.
const MaxSlugLength = 200

// ValidateSlug checks that slug can be used as a single path segment.
// Slugs come straight from the page address, so anything that could
// escape the article directory is rejected rather than cleaned up.
func ValidateSlug(slug string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", fmt.Errorf("slug cannot be empty")
	}
	if len(slug) > MaxSlugLength {
		return "", fmt.Errorf("slug too long (max %d characters)", MaxSlugLength)
	}
	if slug[0] == '.' || slug[0] == '-' {
		return "", fmt.Errorf("slug must start with a letter or digit")
	}
	if strings.Contains(slug, "..") {
		return "", fmt.Errorf("slug contains directory traversal")
	}
	for _, r := range slug {
		if !isSlugRune(r) {
			return "", fmt.Errorf("slug contains invalid character %q", r)
		}
	}
	return slug, nil
}

func isSlugRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_' || r == '.':
		return true
	default:
		return false
	}
}

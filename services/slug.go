package services

import (
	"fmt"
	"strings"
)

// Slugify derives a URL-safe slug from a title. It lowercases the input,
// converts runs of spaces, hyphens and underscores into single hyphens and
// drops every other character that is not a letter or digit, so the result
// always matches the slug rule ([a-z0-9-]+) when the title contains any
// usable characters at all.
func Slugify(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}

	var result strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			result.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen {
				result.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(result.String(), "-")
}

// uniqueSlug returns base unchanged when it is free, otherwise the first
// suffixed variant (base-2, base-3, ...) not present in taken.
func uniqueSlug(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

package models

import (
	"fmt"
	"regexp"

	"github.com/rmejia/unified-portfolio-backend/errs"
)

const (
	maxTitleLen   = 200
	maxSummaryLen = 500
	maxTags       = 20
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateProject checks the project against the content rules. All
// violations are collected into a single ValidationError so a form can show
// every problem at once; nil means the project is valid. The messages are
// surfaced verbatim to end users by whatever boundary calls a store mutator.
func ValidateProject(p UnifiedProject) error {
	var violations []string

	if p.Title == "" {
		violations = append(violations, "title is required")
	} else if len(p.Title) > maxTitleLen {
		violations = append(violations, fmt.Sprintf("title must be %d characters or fewer", maxTitleLen))
	}
	if p.Role == "" {
		violations = append(violations, "role is required")
	}
	if p.Summary == "" {
		violations = append(violations, "summary is required")
	} else if len(p.Summary) > maxSummaryLen {
		violations = append(violations, fmt.Sprintf("summary must be %d characters or fewer", maxSummaryLen))
	}
	if p.Slug == "" || !slugPattern.MatchString(p.Slug) {
		violations = append(violations, "slug may only contain lowercase letters, digits and hyphens")
	}
	if len(p.Tags) > maxTags {
		violations = append(violations, fmt.Sprintf("at most %d tags are allowed", maxTags))
	}

	if len(violations) > 0 {
		return errs.NewValidationError(violations...)
	}
	return nil
}

// ValidSlug reports whether s satisfies the slug rule without running the
// full project validation
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

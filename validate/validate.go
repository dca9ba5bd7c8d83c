package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonwraymond/kagglemcp/fault"
)

// segmentPattern matches a single ref segment: letters, digits,
// underscores and hyphens, between 1 and 100 characters.
var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)

// Ref validates an "owner/name" reference (dataset or model) and returns
// the owner and name halves with surrounding whitespace removed.
func Ref(field, value string) (owner, name string, err error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", "", fault.Validation(fmt.Sprintf("%s is required", field))
	}

	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return "", "", fault.Validation(fmt.Sprintf("%s must be in owner/name format", field))
	}
	for _, part := range parts {
		if !segmentPattern.MatchString(part) {
			return "", "", fault.Validation(fmt.Sprintf(
				"%s segments may only contain letters, digits, hyphens and underscores (1-100 characters)", field))
		}
	}
	return parts[0], parts[1], nil
}

// Slug validates a single identifier segment, such as a competition name.
func Slug(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fault.Validation(fmt.Sprintf("%s is required", field))
	}
	if !segmentPattern.MatchString(value) {
		return "", fault.Validation(fmt.Sprintf(
			"%s may only contain letters, digits, hyphens and underscores (1-100 characters)", field))
	}
	return value, nil
}

// Pagination validates page and pageSize. Out-of-range values are
// rejected outright rather than clamped, so callers learn the limits
// instead of silently receiving truncated results.
func Pagination(page, pageSize, maxPageSize int) error {
	if page < 1 {
		return fault.Validation("page must be at least 1")
	}
	if pageSize < 1 {
		return fault.Validation("page_size must be at least 1")
	}
	if pageSize > maxPageSize {
		return fault.Validation(fmt.Sprintf("page_size must not exceed %d", maxPageSize))
	}
	return nil
}

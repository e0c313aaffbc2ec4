// Package shared provides small helpers used across packages.
package shared

import (
	"regexp"
	"strings"
)

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizeName lowercases a Python package or extra name and collapses
// runs of '-', '_' and '.' into a single hyphen, following PEP 503.
func NormalizeName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	return nameSeparators.ReplaceAllString(lower, "-")
}

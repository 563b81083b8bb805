// Package slug normalizes user input into URL-safe catalog slugs.
package slug

import (
	"regexp"
	"strings"
)

var (
	wordSeparatorRe   = regexp.MustCompile(`[\s_/]+`)
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	multipleDashRe    = regexp.MustCompile(`-+`)

	// validRe matches slugs supplied directly by clients.
	validRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// Make converts free-form input to a canonical slug:
// lowercase, dashes for separators, non-alphanumerics stripped.
//
//	"Slow Burn"  → "slow-burn"
//	"Sci_Fi/TV"  → "sci-fi-tv"
//	"--edge--"   → "edge"
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValid reports whether a client-supplied slug is well formed.
func IsValid(s string) bool {
	return validRe.MatchString(s)
}

// Package core defines the entry and category value types plus the
// normalization rules shared by every other component: bucket-date
// derivation and contrast color resolution.
package core

import (
	"strconv"
	"strings"
)

// Neutral colors used when an entry has no category or references a
// category that no longer exists.
const (
	FallbackColor     = "#333333"
	FallbackTextColor = "#FFFFFF"

	// UncategorizedColor marks the synthetic "uncategorized" bucket in
	// breakdown views.
	UncategorizedColor = "#555555"
)

// ContrastTextColor picks black or white text for the given hex
// background, based on perceived luminance. Shorthand #abc notation is
// expanded; anything unparseable falls back to white.
func ContrastTextColor(hex string) string {
	clean := strings.TrimPrefix(hex, "#")
	if len(clean) == 3 {
		var b strings.Builder
		for _, c := range clean {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		clean = b.String()
	}
	if len(clean) != 6 {
		return "#FFFFFF"
	}

	r, err1 := strconv.ParseInt(clean[0:2], 16, 32)
	g, err2 := strconv.ParseInt(clean[2:4], 16, 32)
	b, err3 := strconv.ParseInt(clean[4:6], 16, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return "#FFFFFF"
	}

	luminance := (r*299 + g*587 + b*114) / 1000
	if luminance > 128 {
		return "#000000"
	}
	return "#FFFFFF"
}

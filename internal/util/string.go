// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

package util

import "strings"

// TruncateString truncates a string to maxLen runes, adding "..." if
// truncated. Rune-based so multi-byte characters are never split.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// ClipString returns at most maxLen runes of s with no ellipsis marker.
// Used where the clipped value becomes data (session titles) rather than
// display text.
func ClipString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// CollapseWhitespace trims s and collapses every run of whitespace to a
// single space, so a multi-line message reads as one line in lists and
// titles.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

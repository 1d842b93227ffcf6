// Package util holds the small string helpers the view layer shares.
package util

import "strings"

// JoinOrNone joins items with ", ", or returns "(none)" when there is
// nothing to join. Status lines use it so an empty list still reads as
// something.
func JoinOrNone(items []string) string {
	return JoinOrDefault(items, "(none)")
}

// JoinOrDefault joins items with ", ", or returns def when the slice is
// empty.
func JoinOrDefault(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

// Pluralize picks the singular form only when count is exactly 1.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// Truncate shortens s to at most max runes, ending in an ellipsis when
// anything was cut. A max below 2 returns the ellipsis alone for
// non-empty input.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max < 2 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

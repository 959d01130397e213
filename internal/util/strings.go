// Package util holds small text helpers shared by the list views.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "..."

// TruncateString caps s at max runes, ending in "..." when it was longer.
// Plain rune counting only; styled panel lines go through TruncateANSI.
func TruncateString(s string, max int) string {
	if max <= len(ellipsis) {
		return ellipsis
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-len(ellipsis)]) + ellipsis
}

// TruncateANSI caps s at max visual columns, ending in "..." when it was
// wider. Escape sequences carry no width and wide characters count double,
// so a cut badge line keeps its styling and its column budget.
func TruncateANSI(s string, max int) string {
	if max <= len(ellipsis) {
		return ellipsis
	}
	if lipgloss.Width(s) <= max {
		return s
	}
	return ansi.Truncate(s, max, ellipsis)
}

package util

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncateString(t *testing.T) {
	cases := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short unchanged", "hello", 10, "hello"},
		{"exact unchanged", "hello", 5, "hello"},
		{"long truncated", "hello world", 8, "hello..."},
		{"max at ellipsis width", "hello", 3, "..."},
		{"max below ellipsis width", "hello", 0, "..."},
		{"negative max", "hello", -5, "..."},
		{"empty unchanged", "", 10, ""},
		{"one rune plus ellipsis", "hello", 4, "h..."},
		{"runes counted, not bytes", "日本語テスト", 5, "日本..."},
		{"mixed ascii and cjk", "hello日本語world", 10, "hello日本..."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateString(tc.input, tc.max); got != tc.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tc.input, tc.max, got, tc.want)
			}
		})
	}
}

func TestTruncateANSI(t *testing.T) {
	badge := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	t.Run("plain string truncated to width", func(t *testing.T) {
		if got := TruncateANSI("hello world", 8); got != "hello..." {
			t.Errorf("TruncateANSI() = %q, want %q", got, "hello...")
		}
	})

	t.Run("width at ellipsis minimum", func(t *testing.T) {
		if got := TruncateANSI("hello", 3); got != "..." {
			t.Errorf("TruncateANSI() = %q, want ellipsis", got)
		}
	})

	t.Run("styled string unchanged when it fits", func(t *testing.T) {
		in := badge.Render("hi")
		if got := TruncateANSI(in, 10); got != in {
			t.Error("a fitting styled string must pass through untouched")
		}
	})

	t.Run("styled string stays within the column budget", func(t *testing.T) {
		got := TruncateANSI(badge.Render("hello world"), 8)
		if w := lipgloss.Width(got); w > 8 {
			t.Errorf("visible width = %d, want <= 8", w)
		}
	})

	t.Run("wide characters counted by columns", func(t *testing.T) {
		got := TruncateANSI("日本語テスト", 8)
		if w := lipgloss.Width(got); w > 8 {
			t.Errorf("visible width = %d, want <= 8", w)
		}
	})
}

// Package styles defines the color palettes and lipgloss styles for the
// dashboard. Two palettes exist, light and dark; every style is derived
// from a palette so a theme switch rebuilds the whole set at once instead
// of hunting down package-level style variables.
package styles

import "github.com/charmbracelet/lipgloss"

// ColorPalette defines the color scheme for a theme. All colors meet WCAG
// AA contrast (4.5:1) against the matching background.
type ColorPalette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color
	Surface   lipgloss.Color
	Text      lipgloss.Color
	Border    lipgloss.Color

	// Status colors for tickets, applications, orders and consultations.
	StatusOpen     lipgloss.Color
	StatusPending  lipgloss.Color
	StatusActive   lipgloss.Color
	StatusComplete lipgloss.Color
	StatusRejected lipgloss.Color
}

// DarkPalette returns the palette for dark terminals.
func DarkPalette() ColorPalette {
	return ColorPalette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red (red-400)
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"),
		Text:      lipgloss.Color("#F9FAFB"),
		Border:    lipgloss.Color("#6B7280"),

		StatusOpen:     lipgloss.Color("#60A5FA"), // Blue
		StatusPending:  lipgloss.Color("#F59E0B"),
		StatusActive:   lipgloss.Color("#10B981"),
		StatusComplete: lipgloss.Color("#A78BFA"),
		StatusRejected: lipgloss.Color("#F87171"),
	}
}

// LightPalette returns the palette for light terminals.
func LightPalette() ColorPalette {
	return ColorPalette{
		Primary:   lipgloss.Color("#6D28D9"), // Purple (violet-700)
		Secondary: lipgloss.Color("#047857"), // Green (emerald-700)
		Warning:   lipgloss.Color("#B45309"), // Amber (amber-700)
		Error:     lipgloss.Color("#B91C1C"), // Red (red-700)
		Muted:     lipgloss.Color("#6B7280"),
		Surface:   lipgloss.Color("#F3F4F6"),
		Text:      lipgloss.Color("#111827"),
		Border:    lipgloss.Color("#9CA3AF"),

		StatusOpen:     lipgloss.Color("#1D4ED8"),
		StatusPending:  lipgloss.Color("#B45309"),
		StatusActive:   lipgloss.Color("#047857"),
		StatusComplete: lipgloss.Color("#6D28D9"),
		StatusRejected: lipgloss.Color("#B91C1C"),
	}
}

// Styles is the full style set derived from one palette.
type Styles struct {
	Palette ColorPalette

	Title    lipgloss.Style
	Subtitle lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	ContentBox lipgloss.Style
	PanelBox   lipgloss.Style
	PanelTitle lipgloss.Style
	PanelError lipgloss.Style

	FieldLabel lipgloss.Style
	FieldValue lipgloss.Style

	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	StatusBadge lipgloss.Style

	HelpBar lipgloss.Style
	HelpKey lipgloss.Style
}

// New builds the style set for a palette.
func New(p ColorPalette) Styles {
	return Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Surface).
			Background(p.Primary).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 2),

		ContentBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2),
		PanelBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		PanelError: lipgloss.NewStyle().
			Foreground(p.Error),

		FieldLabel: lipgloss.NewStyle().
			Foreground(p.Muted),
		FieldValue: lipgloss.NewStyle().
			Foreground(p.Text),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Muted: lipgloss.NewStyle().
			Foreground(p.Muted),
		Error: lipgloss.NewStyle().
			Foreground(p.Error),
		Success: lipgloss.NewStyle().
			Foreground(p.Secondary),
		Warning: lipgloss.NewStyle().
			Foreground(p.Warning),

		StatusBadge: lipgloss.NewStyle().
			Padding(0, 1).
			MarginRight(1),

		HelpBar: lipgloss.NewStyle().
			Foreground(p.Muted).
			MarginTop(1),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary),
	}
}

// ForDark returns the style set matching the terminal background.
func ForDark(dark bool) Styles {
	if dark {
		return New(DarkPalette())
	}
	return New(LightPalette())
}

// StatusColor picks the badge color for a backend status string.
func (s Styles) StatusColor(status string) lipgloss.Color {
	switch status {
	case "open", "new", "submitted", "applied":
		return s.Palette.StatusOpen
	case "pending", "in-progress", "in_progress", "processing", "reviewing", "interview":
		return s.Palette.StatusPending
	case "active", "confirmed", "accepted", "offer":
		return s.Palette.StatusActive
	case "resolved", "closed", "completed", "complete", "delivered":
		return s.Palette.StatusComplete
	case "rejected", "cancelled", "failed":
		return s.Palette.StatusRejected
	default:
		return s.Palette.Muted
	}
}

// Badge renders a status badge.
func (s Styles) Badge(status string) string {
	return s.StatusBadge.Foreground(s.Palette.Surface).Background(s.StatusColor(status)).Render(status)
}

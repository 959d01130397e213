package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/tui/msg"
	"github.com/portside-app/portside/internal/tui/styles"
)

// consultationsState lists consultations; unpaid ones can be opened in the
// checkout screen.
type consultationsState struct {
	loading       bool
	err           error
	consultations []api.Consultation
	cursor        int
}

func (s *consultationsState) load(client *api.Client) tea.Cmd {
	s.loading = true
	s.err = nil
	return func() tea.Msg {
		consultations, err := client.Consultations(context.Background())
		return msg.ConsultationsLoadedMsg{Consultations: consultations, Err: err}
	}
}

func (s *consultationsState) apply(result msg.ConsultationsLoadedMsg) {
	s.loading = false
	s.err = result.Err
	if result.Err == nil {
		s.consultations = result.Consultations
		s.cursor = clampCursor(s.cursor, len(s.consultations))
	}
}

func (s *consultationsState) moveCursor(delta int) {
	s.cursor = clampCursor(s.cursor+delta, len(s.consultations))
}

// selected returns the consultation under the cursor, nil when empty.
func (s *consultationsState) selected() *api.Consultation {
	if len(s.consultations) == 0 {
		return nil
	}
	return &s.consultations[s.cursor]
}

func (s *consultationsState) view(st styles.Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Consultations"))
	b.WriteString("\n")

	switch {
	case s.loading:
		b.WriteString(st.Muted.Render("Loading consultations..."))
	case s.err != nil:
		b.WriteString(st.Error.Render("Could not load consultations: " + userMessage(s.err)))
		b.WriteString("\n" + st.Muted.Render("press r to retry"))
	case len(s.consultations) == 0:
		b.WriteString(st.Muted.Render("You have no consultations scheduled."))
	default:
		for i, c := range s.consultations {
			marker := "  "
			if i == s.cursor {
				marker = st.Selected.Render("▸ ")
			}
			paid := st.Success.Render("paid")
			if !c.PaymentCompleted {
				paid = st.Warning.Render(fmt.Sprintf("$%.2f due", c.EstimatedPrice))
			}
			b.WriteString(fmt.Sprintf("%s%s %s %s %s\n", marker, st.Badge(c.Status),
				st.FieldValue.Render(c.ConsultationType),
				st.Muted.Render(c.PreferredDate+" "+c.PreferredTime), paid))
			if i == s.cursor && c.Duration > 0 {
				b.WriteString("    " + st.FieldLabel.Render("duration ") +
					st.FieldValue.Render(fmt.Sprintf("%d min", c.Duration)) + "\n")
			}
		}
	}
	b.WriteString("\n" + st.HelpBar.Render("↑/↓ select • enter pay • r refresh • esc home"))
	return b.String()
}

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

// ticketsState is the full support ticket list.
type ticketsState struct {
	loading bool
	err     error
	tickets []api.Ticket
	cursor  int
}

func (s *ticketsState) load(client *api.Client) tea.Cmd {
	s.loading = true
	s.err = nil
	return func() tea.Msg {
		tickets, err := client.SupportTickets(context.Background())
		return msg.TicketsLoadedMsg{Tickets: tickets, Err: err}
	}
}

func (s *ticketsState) apply(result msg.TicketsLoadedMsg) {
	s.loading = false
	s.err = result.Err
	if result.Err == nil {
		s.tickets = result.Tickets
		s.cursor = clampCursor(s.cursor, len(s.tickets))
	}
}

func (s *ticketsState) moveCursor(delta int) {
	s.cursor = clampCursor(s.cursor+delta, len(s.tickets))
}

func (s *ticketsState) view(st styles.Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Support Tickets"))
	b.WriteString("\n")

	switch {
	case s.loading:
		b.WriteString(st.Muted.Render("Loading tickets..."))
	case s.err != nil:
		b.WriteString(st.Error.Render("Could not load tickets: " + userMessage(s.err)))
		b.WriteString("\n" + st.Muted.Render("press r to retry"))
	case len(s.tickets) == 0:
		b.WriteString(st.Muted.Render("You have no support tickets."))
	default:
		for i, t := range s.tickets {
			marker := "  "
			if i == s.cursor {
				marker = st.Selected.Render("▸ ")
			}
			number := t.TicketNumber
			if number == "" {
				number = t.ID
			}
			line := fmt.Sprintf("%s%s %s %s", marker, st.Badge(t.Status),
				st.FieldValue.Render(t.Title()), st.Muted.Render("#"+number))
			if t.Priority != "" {
				line += " " + st.Warning.Render(t.Priority)
			}
			b.WriteString(line + "\n")
			if i == s.cursor && t.IssueCategory != "" {
				b.WriteString("    " + st.FieldLabel.Render("category ") +
					st.FieldValue.Render(t.IssueCategory) +
					st.Muted.Render("  opened "+t.CreatedAt) + "\n")
			}
		}
	}
	b.WriteString("\n" + st.HelpBar.Render("↑/↓ select • r refresh • esc home"))
	return b.String()
}

// clampCursor keeps a list cursor inside [0, n).
func clampCursor(cursor, n int) int {
	if n == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

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

// ordersState is the order list plus the aggregate counters. Both fetches
// run together; either side can fail independently.
type ordersState struct {
	loading  bool
	err      error
	orders   []api.Order
	stats    *api.OrderStats
	cursor   int
	orderURL string
}

func (s *ordersState) load(client *api.Client) tea.Cmd {
	s.loading = true
	s.err = nil
	return func() tea.Msg {
		ctx := context.Background()
		orders, err := client.Orders(ctx)
		if err != nil {
			return msg.OrdersLoadedMsg{Err: err}
		}
		// Stats are decoration; the list renders without them.
		stats, statsErr := client.OrderStats(ctx)
		if statsErr != nil {
			stats = nil
		}
		return msg.OrdersLoadedMsg{Orders: orders, Stats: stats}
	}
}

func (s *ordersState) apply(result msg.OrdersLoadedMsg) {
	s.loading = false
	s.err = result.Err
	if result.Err == nil {
		s.orders = result.Orders
		s.stats = result.Stats
		s.cursor = clampCursor(s.cursor, len(s.orders))
	}
}

func (s *ordersState) moveCursor(delta int) {
	s.cursor = clampCursor(s.cursor+delta, len(s.orders))
}

func (s *ordersState) view(st styles.Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Orders"))
	b.WriteString("\n")

	if s.stats != nil {
		b.WriteString(fmt.Sprintf("%s %d  %s %d  %s %d  %s %d  %s %d/%d\n\n",
			st.FieldLabel.Render("total"), s.stats.Total,
			st.FieldLabel.Render("active"), s.stats.Active,
			st.FieldLabel.Render("pending"), s.stats.Pending,
			st.FieldLabel.Render("completed"), s.stats.Completed,
			st.FieldLabel.Render("revisions"), s.stats.RevisionsUsed, s.stats.RevisionsPurchased))
	}

	switch {
	case s.loading:
		b.WriteString(st.Muted.Render("Loading orders..."))
	case s.err != nil:
		b.WriteString(st.Error.Render("Could not load orders: " + userMessage(s.err)))
		b.WriteString("\n" + st.Muted.Render("press r to retry"))
	case len(s.orders) == 0:
		b.WriteString(st.Muted.Render("You have no orders yet."))
	default:
		for i, o := range s.orders {
			marker := "  "
			if i == s.cursor {
				marker = st.Selected.Render("▸ ")
			}
			line := fmt.Sprintf("%s%s %s", marker, st.Badge(o.Status), st.FieldValue.Render(o.Title))
			if o.Price > 0 {
				line += " " + st.Muted.Render(fmt.Sprintf("$%.2f", o.Price))
			}
			b.WriteString(line + "\n")
		}
	}
	if s.orderURL != "" {
		b.WriteString("\n" + st.Muted.Render("Manage orders at "+s.orderURL))
	}
	b.WriteString("\n" + st.HelpBar.Render("↑/↓ select • r refresh • esc home"))
	return b.String()
}

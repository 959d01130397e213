package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/tui/msg"
	"github.com/portside-app/portside/internal/tui/styles"
	"github.com/portside-app/portside/internal/util"
)

// defaultPanelRows caps how many entries each home panel shows when the
// config does not say otherwise; the dedicated views show everything.
const defaultPanelRows = 5

// panelLineWidth caps entry width inside a home panel.
const panelLineWidth = 44

// panelState is one home panel's independent fetch lifecycle. A panel that
// failed renders an error affordance while its siblings render data.
type panelState struct {
	loaded bool
	err    error
	data   any
}

// homeState is the dashboard overview: six panels fetched concurrently on
// entry, each settling on its own.
type homeState struct {
	panels  [msg.PanelCount]panelState
	focused msg.Panel
	rows    int
}

// load starts all panel fetches at once and resets their state.
func (s *homeState) load(client *api.Client) tea.Cmd {
	for i := range s.panels {
		s.panels[i] = panelState{}
	}
	cmds := make([]tea.Cmd, 0, msg.PanelCount)
	for p := msg.Panel(0); p < msg.PanelCount; p++ {
		cmds = append(cmds, loadPanelCmd(client, p))
	}
	return tea.Batch(cmds...)
}

// refresh re-fetches a single panel.
func (s *homeState) refresh(client *api.Client, p msg.Panel) tea.Cmd {
	s.panels[p] = panelState{}
	return loadPanelCmd(client, p)
}

// loadPanelCmd fetches one panel's data.
func loadPanelCmd(client *api.Client, p msg.Panel) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var (
			data any
			err  error
		)
		switch p {
		case msg.PanelTickets:
			data, err = client.SupportTickets(ctx)
		case msg.PanelApplications:
			data, err = client.JobApplications(ctx)
		case msg.PanelConsultations:
			data, err = client.Consultations(ctx)
		case msg.PanelOrders:
			data, err = client.Orders(ctx)
		case msg.PanelOrderStats:
			data, err = client.OrderStats(ctx)
		case msg.PanelNotifications:
			data, err = client.Notifications(ctx)
		}
		return msg.PanelLoadedMsg{Panel: p, Data: data, Err: err}
	}
}

// apply records one panel's result.
func (s *homeState) apply(result msg.PanelLoadedMsg) {
	s.panels[result.Panel] = panelState{loaded: true, err: result.Err, data: result.Data}
}

// settled reports whether every panel has resolved, successfully or not.
func (s *homeState) settled() bool {
	for i := range s.panels {
		if !s.panels[i].loaded {
			return false
		}
	}
	return true
}

func (s *homeState) view(st styles.Styles, width int, user *api.User) string {
	var b strings.Builder
	if user != nil {
		b.WriteString(st.Title.Render("Welcome back, " + user.DisplayName()))
		b.WriteString("\n")
	}
	if !s.settled() {
		b.WriteString(st.Muted.Render("Loading your dashboard..."))
		b.WriteString("\n")
	}

	panelWidth := width/2 - 4
	if panelWidth < 30 {
		panelWidth = 30
	}

	rows := [][]msg.Panel{
		{msg.PanelOrderStats, msg.PanelNotifications},
		{msg.PanelTickets, msg.PanelApplications},
		{msg.PanelConsultations, msg.PanelOrders},
	}
	for _, row := range rows {
		left := s.renderPanel(st, row[0], panelWidth)
		right := s.renderPanel(st, row[1], panelWidth)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
		b.WriteString("\n")
	}
	b.WriteString(st.HelpBar.Render("←/→ focus panel • r refresh panel • 1-6 open view • q quit"))
	return b.String()
}

func (s *homeState) renderPanel(st styles.Styles, p msg.Panel, width int) string {
	var b strings.Builder

	title := st.PanelTitle.Render(panelTitle(p))
	if p == s.focused {
		title = st.Selected.Render("▸ ") + title
	}
	b.WriteString(title + "\n")

	state := s.panels[p]
	switch {
	case !state.loaded:
		b.WriteString(st.Muted.Render("loading..."))
	case state.err != nil:
		b.WriteString(st.PanelError.Render(panelErrorText(p)))
		b.WriteString("\n" + st.Muted.Render("press r to retry"))
	default:
		b.WriteString(renderPanelData(st, state.data, s.panelRows()))
	}

	return st.PanelBox.Width(width).Render(b.String())
}

func panelTitle(p msg.Panel) string {
	switch p {
	case msg.PanelTickets:
		return "Support Tickets"
	case msg.PanelApplications:
		return "Job Applications"
	case msg.PanelConsultations:
		return "Consultations"
	case msg.PanelOrders:
		return "Recent Orders"
	case msg.PanelOrderStats:
		return "Order Summary"
	case msg.PanelNotifications:
		return "Notifications"
	default:
		return p.String()
	}
}

func panelErrorText(p msg.Panel) string {
	return "Could not load " + strings.ReplaceAll(p.String(), "-", " ")
}

func (s *homeState) panelRows() int {
	if s.rows > 0 {
		return s.rows
	}
	return defaultPanelRows
}

func renderPanelData(st styles.Styles, data any, rows int) string {
	switch v := data.(type) {
	case []api.Ticket:
		if len(v) == 0 {
			return st.Muted.Render("No support tickets")
		}
		var b strings.Builder
		for i, t := range v {
			if i == rows {
				b.WriteString(st.Muted.Render(fmt.Sprintf("... and %d more", len(v)-rows)))
				break
			}
			b.WriteString(util.TruncateANSI(st.Badge(t.Status)+st.FieldValue.Render(t.Title()), panelLineWidth) + "\n")
		}
		return strings.TrimRight(b.String(), "\n")

	case []api.JobApplication:
		if len(v) == 0 {
			return st.Muted.Render("No job applications")
		}
		var b strings.Builder
		for i, a := range v {
			if i == rows {
				b.WriteString(st.Muted.Render(fmt.Sprintf("... and %d more", len(v)-rows)))
				break
			}
			b.WriteString(util.TruncateANSI(st.Badge(a.CurrentStatus())+st.FieldValue.Render(a.Position), panelLineWidth) + "\n")
		}
		return strings.TrimRight(b.String(), "\n")

	case []api.Consultation:
		if len(v) == 0 {
			return st.Muted.Render("No consultations")
		}
		var b strings.Builder
		for i, c := range v {
			if i == rows {
				b.WriteString(st.Muted.Render(fmt.Sprintf("... and %d more", len(v)-rows)))
				break
			}
			b.WriteString(st.Badge(c.Status) + st.FieldValue.Render(c.ConsultationType) +
				st.Muted.Render(" "+c.PreferredDate) + "\n")
		}
		return strings.TrimRight(b.String(), "\n")

	case []api.Order:
		if len(v) == 0 {
			return st.Muted.Render("No orders yet")
		}
		var b strings.Builder
		for i, o := range v {
			if i == rows {
				b.WriteString(st.Muted.Render(fmt.Sprintf("... and %d more", len(v)-rows)))
				break
			}
			b.WriteString(util.TruncateANSI(st.Badge(o.Status)+st.FieldValue.Render(o.Title), panelLineWidth) + "\n")
		}
		return strings.TrimRight(b.String(), "\n")

	case *api.OrderStats:
		return fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
			st.FieldLabel.Render("total"), st.FieldValue.Render(fmt.Sprint(v.Total)),
			st.FieldLabel.Render("active"), st.FieldValue.Render(fmt.Sprint(v.Active)),
			st.FieldLabel.Render("pending"), st.FieldValue.Render(fmt.Sprint(v.Pending)),
			st.FieldLabel.Render("done"), st.FieldValue.Render(fmt.Sprint(v.Completed)))

	case []api.Notification:
		unread := 0
		for _, n := range v {
			if !n.Read {
				unread++
			}
		}
		if unread == 0 {
			return st.Muted.Render("All caught up")
		}
		return st.Warning.Render(fmt.Sprintf("%d unread", unread)) +
			st.Muted.Render(fmt.Sprintf(" of %d", len(v)))

	default:
		return st.Muted.Render("No data")
	}
}

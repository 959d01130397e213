package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the whole screen: tab bar, active view, footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	if m.deps.Session.Loading() {
		return m.styles.Muted.Render("Connecting to Portside...")
	}

	st := m.styles

	switch m.view {
	case ViewLogin:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.login.view(st))
	case ViewSessionExpired:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			viewSessionExpired(st))
	case ViewServerError:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			viewServerError(st))
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.view {
	case ViewHome:
		b.WriteString(m.home.view(st, m.width, m.deps.Session.User()))
	case ViewTickets:
		b.WriteString(m.tickets.view(st))
	case ViewApplications:
		b.WriteString(m.applications.view(st))
	case ViewConsultations:
		b.WriteString(m.consultations.view(st))
	case ViewOrders:
		b.WriteString(m.orders.view(st))
	case ViewNotifications:
		b.WriteString(m.notifications.view(st))
	case ViewProfile:
		b.WriteString(m.profile.view(st))
	case ViewPayment:
		b.WriteString(m.payment.view(st))
	}

	if m.status != "" {
		style := st.Muted
		if m.statusIsErr {
			style = st.Error
		}
		b.WriteString("\n" + style.Render(m.status))
	}
	return b.String()
}

func (m Model) renderTabs() string {
	st := m.styles
	tabs := make([]string, 0, len(tabViews))
	for _, v := range tabViews {
		label := tabTitle(v)
		if v == ViewNotifications {
			if unread := m.notifications.unreadCount(); unread > 0 {
				label += " ●"
			}
		}
		if v == m.view {
			tabs = append(tabs, st.TabActive.Render(label))
		} else {
			tabs = append(tabs, st.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/tui/msg"
	"github.com/portside-app/portside/internal/tui/styles"
	"github.com/portside-app/portside/internal/util"
)

// notificationsState is the notification list. Mark-read is write-then-
// render: the backend acknowledges first, only then does the local list
// flip the read flag. A failed write leaves the item visibly unread.
type notificationsState struct {
	loading       bool
	err           error
	notifications []api.Notification
	cursor        int
	marking       bool
}

func (s *notificationsState) load(client *api.Client) tea.Cmd {
	s.loading = true
	s.err = nil
	return func() tea.Msg {
		notifications, err := client.Notifications(context.Background())
		return msg.NotificationsLoadedMsg{Notifications: notifications, Err: err}
	}
}

func (s *notificationsState) apply(result msg.NotificationsLoadedMsg) {
	s.loading = false
	s.err = result.Err
	if result.Err == nil {
		s.notifications = result.Notifications
		s.cursor = clampCursor(s.cursor, len(s.notifications))
	}
}

func (s *notificationsState) moveCursor(delta int) {
	s.cursor = clampCursor(s.cursor+delta, len(s.notifications))
}

// markRead asks the backend to mark the selected notification read.
func (s *notificationsState) markRead(client *api.Client) tea.Cmd {
	if s.marking || len(s.notifications) == 0 {
		return nil
	}
	n := s.notifications[s.cursor]
	if n.Read {
		return nil
	}
	s.marking = true
	return func() tea.Msg {
		err := client.MarkNotificationRead(context.Background(), n.ID)
		return msg.NotificationReadMsg{ID: n.ID, Err: err}
	}
}

// markAllRead asks the backend to mark every notification read.
func (s *notificationsState) markAllRead(client *api.Client) tea.Cmd {
	if s.marking {
		return nil
	}
	s.marking = true
	return func() tea.Msg {
		err := client.MarkAllNotificationsRead(context.Background())
		return msg.NotificationReadMsg{All: true, Err: err}
	}
}

// applyRead folds in an acknowledged (or failed) mark-read write.
func (s *notificationsState) applyRead(result msg.NotificationReadMsg) {
	s.marking = false
	if result.Err != nil {
		return
	}
	for i := range s.notifications {
		if result.All || s.notifications[i].ID == result.ID {
			s.notifications[i].Read = true
		}
	}
}

// unreadCount returns how many notifications are unread.
func (s *notificationsState) unreadCount() int {
	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *notificationsState) view(st styles.Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Notifications"))
	b.WriteString("\n")

	switch {
	case s.loading:
		b.WriteString(st.Muted.Render("Loading notifications..."))
	case s.err != nil:
		b.WriteString(st.Error.Render("Could not load notifications: " + userMessage(s.err)))
		b.WriteString("\n" + st.Muted.Render("press r to retry"))
	case len(s.notifications) == 0:
		b.WriteString(st.Muted.Render("No notifications."))
	default:
		for i, n := range s.notifications {
			marker := "  "
			if i == s.cursor {
				marker = st.Selected.Render("▸ ")
			}
			title := st.FieldValue.Render(n.Title)
			dot := "  "
			if !n.Read {
				dot = st.Warning.Render("● ")
				title = st.FieldValue.Bold(true).Render(n.Title)
			}
			b.WriteString(marker + dot + title + "\n")
			if i == s.cursor {
				b.WriteString("    " + st.Muted.Render(util.TruncateString(n.Message, 100)) + "\n")
			}
		}
	}
	b.WriteString("\n" + st.HelpBar.Render("↑/↓ select • enter mark read • a mark all read • r refresh • esc home"))
	return b.String()
}

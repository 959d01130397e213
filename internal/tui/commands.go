package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/portside-app/portside/internal/tui/msg"
)

// Commands run on the Bubbletea goroutine pool with a background context: a
// screen switch must not cancel an in-flight write.

func (m Model) loadSessionCmd() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx := context.Background()
		deps.Session.Load(ctx)
		deps.Theme.Load(ctx)
		return msg.SessionLoadedMsg{User: deps.Session.User()}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx := context.Background()
		user, err := deps.Session.Login(ctx, email, password)
		if err != nil {
			return msg.LoginResultMsg{Err: err}
		}
		deps.Theme.Load(ctx)
		return msg.LoginResultMsg{User: user}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		return msg.LogoutMsg{Err: deps.Session.Logout(context.Background())}
	}
}

func (m Model) toggleThemeCmd() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		deps.Theme.Toggle(context.Background())
		return msg.ThemeChangedMsg{}
	}
}

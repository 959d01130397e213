package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/portside-app/portside/internal/errors"
	"github.com/portside-app/portside/internal/tui/msg"
	"github.com/portside-app/portside/internal/twofactor"
)

// Update is the single event loop dispatch.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(message)

	case msg.SessionLoadedMsg:
		m.refreshStyles()
		if message.User != nil {
			cmd := m.navigate(ViewHome)
			return m, cmd
		}
		m.view = ViewLogin
		return m, nil

	case msg.LoginResultMsg:
		m.login.finish(message.Err)
		if message.Err != nil {
			return m, nil
		}
		m.refreshStyles()
		cmd := m.navigate(ViewHome)
		return m, cmd

	case msg.LogoutMsg:
		// The local session is already cleared; a failed server call only
		// warrants a note, not a blocked sign-out.
		cmd := m.navigate(ViewLogin)
		if message.Err != nil {
			m.setStatus("Signed out locally; the server could not be reached", false)
		}
		return m, tea.Batch(cmd, m.login.input.Focus())

	case msg.NavigateMsg:
		if v, ok := viewForRoute(message.Route); ok {
			if v == ViewSessionExpired {
				// The backend said the cookie is dead; drop the local user
				// without a round trip.
				m.deps.Session.Expire()
			}
			cmd := m.navigate(v)
			return m, cmd
		}
		return m, nil

	case msg.ThemeChangedMsg:
		m.refreshStyles()
		return m, nil

	case msg.PanelLoadedMsg:
		m.home.apply(message)
		return m, nil

	case msg.TicketsLoadedMsg:
		m.tickets.apply(message)
		return m, nil

	case msg.ApplicationsLoadedMsg:
		m.applications.apply(message)
		return m, nil

	case msg.ConsultationsLoadedMsg:
		m.consultations.apply(message)
		return m, nil

	case msg.OrdersLoadedMsg:
		m.orders.apply(message)
		return m, nil

	case msg.NotificationsLoadedMsg:
		m.notifications.apply(message)
		return m, nil

	case msg.NotificationReadMsg:
		m.notifications.applyRead(message)
		if message.Err != nil {
			m.setStatus("Could not mark notification read: "+userMessage(message.Err), true)
		}
		return m, nil

	case msg.ProfileLoadedMsg:
		m.profile.applyLoad(message)
		return m, nil

	case msg.ProfileSavedMsg:
		m.profile.applySave(message)
		return m, nil

	case msg.PasswordChangedMsg:
		m.profile.applyPasswordChange(message)
		return m, nil

	case msg.TwoFactorChangedMsg:
		m.profile.applyTwoFactor(message)
		return m, nil

	case msg.ClipboardResultMsg:
		m.profile.applyClipboard(message)
		return m, nil

	case msg.PaymentStartedMsg:
		m.payment.applyStarted(message)
		return m, nil

	case msg.PaymentConfirmedMsg:
		m.payment.applyConfirmed(message)
		if message.Err == nil {
			// Paid: the consultations list is stale now.
			m.consultations.loading = true
		}
		return m, nil

	case msg.ErrMsg:
		m.setStatus(userMessage(message.Err), true)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if keyMsg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.view {
	case ViewLogin:
		cmd := m.login.update(&m, keyMsg)
		return m, cmd

	case ViewSessionExpired, ViewServerError:
		switch keyMsg.String() {
		case "enter", "l":
			cmd := m.navigate(ViewLogin)
			return m, cmd
		case "q":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case ViewPayment:
		if keyMsg.String() == "esc" && !m.payment.busy {
			cmd := m.navigate(ViewConsultations)
			return m, cmd
		}
		cmd := m.payment.update(&m, keyMsg)
		return m, cmd

	case ViewProfile:
		if keyMsg.String() == "esc" && !m.profile.editingField &&
			!m.profile.editor.Editing() && m.profile.wizard.Step() == twofactor.StepClosed {
			cmd := m.navigate(ViewHome)
			return m, cmd
		}
		if keyMsg.String() == "r" && m.profile.err != nil {
			cmd := m.profile.load()
			return m, cmd
		}
		cmd := m.profile.update(&m, keyMsg)
		return m, cmd
	}

	// Remaining views are read-mostly lists; global keys apply.
	switch keyMsg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "t":
		cmd := m.toggleThemeCmd()
		return m, cmd
	case "L":
		cmd := m.logoutCmd()
		return m, cmd
	case "esc":
		if m.view != ViewHome {
			cmd := m.navigate(ViewHome)
			return m, cmd
		}
		return m, nil
	case "1":
		cmd := m.navigate(ViewHome)
		return m, cmd
	case "2":
		cmd := m.navigate(ViewTickets)
		return m, cmd
	case "3":
		cmd := m.navigate(ViewApplications)
		return m, cmd
	case "4":
		cmd := m.navigate(ViewConsultations)
		return m, cmd
	case "5":
		cmd := m.navigate(ViewOrders)
		return m, cmd
	case "6":
		cmd := m.navigate(ViewNotifications)
		return m, cmd
	case "p":
		cmd := m.navigate(ViewProfile)
		return m, cmd
	case "tab", "shift+tab":
		cmd := m.cycleTab(keyMsg.String() == "tab")
		return m, cmd
	}

	switch m.view {
	case ViewHome:
		return m.handleHomeKey(keyMsg)
	case ViewTickets:
		switch keyMsg.String() {
		case "up", "k":
			m.tickets.moveCursor(-1)
		case "down", "j":
			m.tickets.moveCursor(1)
		case "r":
			cmd := m.tickets.load(m.deps.Client)
			return m, cmd
		}
	case ViewApplications:
		switch keyMsg.String() {
		case "up", "k":
			m.applications.moveCursor(-1)
		case "down", "j":
			m.applications.moveCursor(1)
		case "r":
			cmd := m.applications.load(m.deps.Client)
			return m, cmd
		}
	case ViewConsultations:
		switch keyMsg.String() {
		case "up", "k":
			m.consultations.moveCursor(-1)
		case "down", "j":
			m.consultations.moveCursor(1)
		case "r":
			cmd := m.consultations.load(m.deps.Client)
			return m, cmd
		case "enter":
			if c := m.consultations.selected(); c != nil && !c.PaymentCompleted {
				if m.deps.Confirmer == nil {
					m.setStatus("Payments are not configured on this install", true)
					return m, nil
				}
				cmd := m.payment.open(&m, c.ID)
				m.view = ViewPayment
				m.route.Store(routeForView(ViewPayment))
				return m, cmd
			}
		}
	case ViewOrders:
		switch keyMsg.String() {
		case "up", "k":
			m.orders.moveCursor(-1)
		case "down", "j":
			m.orders.moveCursor(1)
		case "r":
			cmd := m.orders.load(m.deps.Client)
			return m, cmd
		}
	case ViewNotifications:
		switch keyMsg.String() {
		case "up", "k":
			m.notifications.moveCursor(-1)
		case "down", "j":
			m.notifications.moveCursor(1)
		case "r":
			cmd := m.notifications.load(m.deps.Client)
			return m, cmd
		case "enter":
			cmd := m.notifications.markRead(m.deps.Client)
			return m, cmd
		case "a":
			cmd := m.notifications.markAllRead(m.deps.Client)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleHomeKey(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "left", "h":
		if m.home.focused > 0 {
			m.home.focused--
		}
	case "right", "l":
		if int(m.home.focused) < msg.PanelCount-1 {
			m.home.focused++
		}
	case "r":
		cmd := m.home.refresh(m.deps.Client, m.home.focused)
		return m, cmd
	case "R":
		cmd := m.home.load(m.deps.Client)
		return m, cmd
	}
	return m, nil
}

// cycleTab moves to the next or previous tab view.
func (m *Model) cycleTab(forward bool) tea.Cmd {
	current := 0
	for i, v := range tabViews {
		if v == m.view {
			current = i
			break
		}
	}
	if forward {
		current = (current + 1) % len(tabViews)
	} else {
		current = (current - 1 + len(tabViews)) % len(tabViews)
	}
	return m.navigate(tabViews[current])
}

// userMessage renders an error the way the footer and forms show it:
// the backend-provided message when there is one, a stable fallback
// otherwise.
func userMessage(err error) string {
	var apiErr *errors.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}

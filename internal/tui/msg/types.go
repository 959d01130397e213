package msg

import (
	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/clipboard"
)

// Panel identifies one of the dashboard home panels.
type Panel int

// Dashboard home panels, one per backend collection.
const (
	PanelTickets Panel = iota
	PanelApplications
	PanelConsultations
	PanelOrders
	PanelOrderStats
	PanelNotifications
)

// PanelCount is the number of home panels fetched on entry.
const PanelCount = 6

// String returns the panel name.
func (p Panel) String() string {
	switch p {
	case PanelTickets:
		return "tickets"
	case PanelApplications:
		return "applications"
	case PanelConsultations:
		return "consultations"
	case PanelOrders:
		return "orders"
	case PanelOrderStats:
		return "order-stats"
	case PanelNotifications:
		return "notifications"
	default:
		return "unknown"
	}
}

// SessionLoadedMsg is sent when the startup session probe resolves, whether
// or not a user came back.
type SessionLoadedMsg struct {
	User *api.User
	Err  error
}

// LoginResultMsg is sent when a login attempt completes.
type LoginResultMsg struct {
	User *api.User
	Err  error
}

// LogoutMsg is sent when logout completes. The local session is already
// cleared by then regardless of Err.
type LogoutMsg struct {
	Err error
}

// NavigateMsg asks the root model to switch to a route. The API layer's
// redirect policy produces these for session-expired and server-error.
type NavigateMsg struct {
	Route api.Route
}

// PanelLoadedMsg carries one home panel's fetch result. Data is one of the
// api slice or stats types depending on Panel.
type PanelLoadedMsg struct {
	Panel Panel
	Data  any
	Err   error
}

// TicketsLoadedMsg carries the full ticket list for the tickets view.
type TicketsLoadedMsg struct {
	Tickets []api.Ticket
	Err     error
}

// ApplicationsLoadedMsg carries the job application list.
type ApplicationsLoadedMsg struct {
	Applications []api.JobApplication
	Err          error
}

// ConsultationsLoadedMsg carries the consultation list.
type ConsultationsLoadedMsg struct {
	Consultations []api.Consultation
	Err           error
}

// OrdersLoadedMsg carries the order list and aggregate counters.
type OrdersLoadedMsg struct {
	Orders []api.Order
	Stats  *api.OrderStats
	Err    error
}

// NotificationsLoadedMsg carries the notification list.
type NotificationsLoadedMsg struct {
	Notifications []api.Notification
	Err           error
}

// NotificationReadMsg is sent after the backend acknowledged (or refused) a
// mark-read write. The list re-renders only on success.
type NotificationReadMsg struct {
	ID  string
	All bool
	Err error
}

// ProfileLoadedMsg is sent when the profile editor finished (re)loading.
type ProfileLoadedMsg struct {
	Err error
}

// ProfileSavedMsg is sent when a profile save attempt completes.
type ProfileSavedMsg struct {
	Err error
}

// PasswordChangedMsg is sent when a password change attempt completes.
type PasswordChangedMsg struct {
	Err error
}

// TwoFactorChangedMsg is sent after any 2FA wizard call that may have moved
// the machine: open, retry, verify, disable.
type TwoFactorChangedMsg struct {
	Err error
}

// ClipboardResultMsg reports how a copy request ended. When Err is
// ErrManualCopyRequired the view shows the text for manual copying.
type ClipboardResultMsg struct {
	Method clipboard.Method
	Text   string
	Err    error
}

// PaymentStartedMsg is sent when the checkout flow finished Start.
type PaymentStartedMsg struct {
	Err error
}

// PaymentConfirmedMsg is sent when a card confirmation attempt completes.
type PaymentConfirmedMsg struct {
	Err error
}

// ThemeChangedMsg is sent after a theme toggle has been applied (and
// persisted, for signed-in users).
type ThemeChangedMsg struct{}

// ErrMsg wraps an error for the status line.
type ErrMsg struct {
	Err error
}

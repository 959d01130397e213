// Package tui implements the Portside dashboard: a tabbed terminal UI over
// the client portal API with screens for the home overview, support tickets,
// job applications, consultations, orders, notifications, the profile (with
// security settings and the 2FA wizard), and consultation checkout.
package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/clipboard"
	"github.com/portside-app/portside/internal/logging"
	"github.com/portside-app/portside/internal/payment"
	"github.com/portside-app/portside/internal/profile"
	"github.com/portside-app/portside/internal/session"
	"github.com/portside-app/portside/internal/theme"
	"github.com/portside-app/portside/internal/tui/styles"
	"github.com/portside-app/portside/internal/twofactor"
)

// Deps are the long-lived collaborators the dashboard is built from. All of
// them are constructed once in cmd and shared.
type Deps struct {
	Client    *api.Client
	Session   *session.Manager
	Theme     *theme.Manager
	Copier    *clipboard.Copier
	Confirmer payment.Confirmer
	Logger    *logging.Logger

	// PanelRows overrides how many entries each home panel shows.
	PanelRows int

	// OrderURL is the external order-management system, shown on the orders
	// view when configured.
	OrderURL string
}

// Model holds the TUI application state.
type Model struct {
	deps   Deps
	logger *logging.Logger

	view   View
	width  int
	height int
	ready  bool
	styles styles.Styles

	// status is a transient message in the footer, cleared on navigation.
	status      string
	statusIsErr bool

	quitting bool

	// route mirrors the current view for the navigation guard, so a burst
	// of failures does not re-trigger navigation to the screen already
	// showing. Shared with the guard's current() callback.
	route *atomic.Value

	login         loginState
	home          homeState
	tickets       ticketsState
	applications  applicationsState
	consultations consultationsState
	orders        ordersState
	notifications notificationsState
	profile       profileState
	payment       paymentState
}

// NewModel creates the dashboard model. The route value is shared with the
// navigation guard constructed alongside it.
func NewModel(deps Deps, route *atomic.Value) Model {
	if deps.Logger == nil {
		deps.Logger = logging.NopLogger()
	}
	if route == nil {
		route = &atomic.Value{}
		route.Store(api.Route(""))
	}
	m := Model{
		deps:   deps,
		logger: deps.Logger.WithView("root"),
		view:   ViewLogin,
		styles: styles.ForDark(deps.Theme.Dark()),
		route:  route,
	}
	m.login = newLoginState()
	m.home.rows = deps.PanelRows
	m.orders.orderURL = deps.OrderURL
	m.profile.editor = profile.NewEditor(deps.Client, deps.Logger)
	m.profile.wizard = twofactor.NewWizard(deps.Client, deps.Logger)
	return m
}

// Init kicks off the startup session probe.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSessionCmd(), m.login.input.Focus())
}

// navigate switches screens, clears the transient status, and returns the
// load command for screens that fetch on entry.
func (m *Model) navigate(v View) tea.Cmd {
	m.logger.Debug("navigate", "from", m.view.String(), "to", v.String())
	m.view = v
	m.status = ""
	m.statusIsErr = false
	m.route.Store(routeForView(v))

	if v == ViewLogin {
		// Arriving back at sign-in re-arms the one-shot redirect guard.
		m.deps.Client.Guard().Reset()
	}

	switch v {
	case ViewHome:
		return m.home.load(m.deps.Client)
	case ViewTickets:
		return m.tickets.load(m.deps.Client)
	case ViewApplications:
		return m.applications.load(m.deps.Client)
	case ViewConsultations:
		return m.consultations.load(m.deps.Client)
	case ViewOrders:
		return m.orders.load(m.deps.Client)
	case ViewNotifications:
		return m.notifications.load(m.deps.Client)
	case ViewProfile:
		return m.profile.load()
	default:
		return nil
	}
}

// setStatus sets the transient footer message.
func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusIsErr = isErr
}

// refreshStyles rebuilds the style set after a theme change.
func (m *Model) refreshStyles() {
	m.styles = styles.ForDark(m.deps.Theme.Dark())
}

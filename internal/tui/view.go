package tui

import "github.com/portside-app/portside/internal/api"

// View identifies a top-level screen.
type View int

const (
	ViewLogin View = iota
	ViewHome
	ViewTickets
	ViewApplications
	ViewConsultations
	ViewOrders
	ViewNotifications
	ViewProfile
	ViewPayment
	ViewSessionExpired
	ViewServerError
)

// String returns the view name for logs and tests.
func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewHome:
		return "home"
	case ViewTickets:
		return "tickets"
	case ViewApplications:
		return "applications"
	case ViewConsultations:
		return "consultations"
	case ViewOrders:
		return "orders"
	case ViewNotifications:
		return "notifications"
	case ViewProfile:
		return "profile"
	case ViewPayment:
		return "payment"
	case ViewSessionExpired:
		return "session-expired"
	case ViewServerError:
		return "server-error"
	default:
		return "unknown"
	}
}

// tabViews are the views reachable through the tab bar, in display order.
var tabViews = []View{
	ViewHome,
	ViewTickets,
	ViewApplications,
	ViewConsultations,
	ViewOrders,
	ViewNotifications,
	ViewProfile,
}

// tabTitle is the tab bar label for a view.
func tabTitle(v View) string {
	switch v {
	case ViewHome:
		return "Home"
	case ViewTickets:
		return "Tickets"
	case ViewApplications:
		return "Applications"
	case ViewConsultations:
		return "Consultations"
	case ViewOrders:
		return "Orders"
	case ViewNotifications:
		return "Notifications"
	case ViewProfile:
		return "Profile"
	default:
		return v.String()
	}
}

// viewForRoute maps the API layer's error routes onto screens.
func viewForRoute(r api.Route) (View, bool) {
	switch r {
	case api.RouteSessionExpired:
		return ViewSessionExpired, true
	case api.RouteServerError:
		return ViewServerError, true
	default:
		return ViewHome, false
	}
}

// routeForView is the inverse mapping, used to tell the navigation guard
// where the UI already is.
func routeForView(v View) api.Route {
	switch v {
	case ViewSessionExpired:
		return api.RouteSessionExpired
	case ViewServerError:
		return api.RouteServerError
	default:
		return ""
	}
}

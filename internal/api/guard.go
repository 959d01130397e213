package api

import "sync"

// Route identifies a full-page destination the HTTP layer can force the UI
// onto when a mutating call fails hard.
type Route string

const (
	// RouteSessionExpired is the dedicated error route for rejected sessions.
	RouteSessionExpired Route = "error/session-expired"
	// RouteServerError is the dedicated error route for 5xx and network
	// failures.
	RouteServerError Route = "error/server-error"
)

// NavigationGuard owns the "already redirecting" flag that keeps concurrent
// failing requests from stacking navigations. It is constructed once at
// application start and injected into the Client; there is no module-level
// state.
//
// current reports the route the UI is presently on (may be empty when the
// caller has no notion of routes, e.g. one-shot CLI commands). navigate is
// invoked at most once for the lifetime of the guard, until Reset.
type NavigationGuard struct {
	mu          sync.Mutex
	redirecting bool

	current  func() Route
	navigate func(Route)
}

// NewNavigationGuard creates a guard with the given route provider and
// navigate callback. Either may be nil: a nil navigate makes Trigger a
// flag-only operation, which is what the CLI subcommands use.
func NewNavigationGuard(current func() Route, navigate func(Route)) *NavigationGuard {
	return &NavigationGuard{current: current, navigate: navigate}
}

// Trigger requests a full-page navigation to route. It fires the navigate
// callback only if no redirect is already in flight and the UI is not
// already on the target route. Returns whether a navigation was performed.
func (g *NavigationGuard) Trigger(route Route) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.redirecting {
		return false
	}
	g.redirecting = true

	if g.current != nil && g.current() == route {
		return false
	}
	if g.navigate == nil {
		return false
	}
	g.navigate(route)
	return true
}

// Redirecting reports whether a redirect has been triggered.
func (g *NavigationGuard) Redirecting() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.redirecting
}

// Reset clears the flag. Called after the user leaves an error route, e.g.
// by signing in again.
func (g *NavigationGuard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.redirecting = false
}

package tui

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/logging"
	"github.com/portside-app/portside/internal/tui/msg"
)

// App wraps the Bubbletea program and owns the navigation guard. The guard
// has to exist before the API client it is injected into, and the program it
// forwards to only exists once Run starts; App bridges that gap and drops
// guard triggers that fire before the program is up.
type App struct {
	program atomic.Pointer[tea.Program]
	guard   *api.NavigationGuard
	route   *atomic.Value
	logger  *logging.Logger
}

// NewApp creates the application shell and its navigation guard. Construct
// the API client with Guard(), then call Run with the assembled Deps.
func NewApp(logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.NopLogger()
	}
	a := &App{logger: logger}
	a.route = &atomic.Value{}
	a.route.Store(api.Route(""))

	a.guard = api.NewNavigationGuard(
		func() api.Route {
			return a.route.Load().(api.Route)
		},
		func(r api.Route) {
			if p := a.program.Load(); p != nil {
				p.Send(msg.NavigateMsg{Route: r})
			}
		},
	)
	return a
}

// Guard returns the navigation guard for API client construction.
func (a *App) Guard() *api.NavigationGuard { return a.guard }

// Run starts the TUI and blocks until it exits.
func (a *App) Run(deps Deps) error {
	model := NewModel(deps, a.route)

	program := tea.NewProgram(model, tea.WithAltScreen())
	a.program.Store(program)

	// Terminal signals quit the program cleanly so the alternate screen is
	// restored.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		program.Send(tea.Quit())
	}()

	_, err := program.Run()
	return err
}

// Package theme holds the UI theme preference. Authenticated users get the
// preference stored server-side; anonymous users (and "system" mode) derive
// it from the terminal background. A single Manager is constructed at start
// and passed explicitly, like the session manager.
package theme

import (
	"context"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/logging"
	"github.com/portside-app/portside/internal/session"
)

// Mode is the configured theme preference.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeLight || m == ModeDark || m == ModeSystem
}

// Manager is the single writer of the theme preference.
type Manager struct {
	client  *api.Client
	session *session.Manager
	logger  *logging.Logger

	// darkTerminal probes the terminal background. Injectable for tests;
	// defaults to lipgloss.HasDarkBackground.
	darkTerminal func() bool

	mu   sync.RWMutex
	mode Mode
}

// NewManager creates a Manager with the configured default mode.
func NewManager(client *api.Client, sess *session.Manager, defaultMode Mode, logger *logging.Logger) *Manager {
	if !defaultMode.Valid() {
		defaultMode = ModeSystem
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Manager{
		client:       client,
		session:      sess,
		logger:       logger,
		darkTerminal: lipgloss.HasDarkBackground,
		mode:         defaultMode,
	}
}

// Mode returns the configured preference (which may be ModeSystem).
func (m *Manager) Mode() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// Dark resolves the preference to a concrete rendering choice.
func (m *Manager) Dark() bool {
	switch m.Mode() {
	case ModeDark:
		return true
	case ModeLight:
		return false
	default:
		return m.darkTerminal()
	}
}

// Load applies the server-side preference for authenticated users. Anonymous
// users keep the local default. Fetch failures fall back to system mode;
// theming must never break the UI.
func (m *Manager) Load(ctx context.Context) {
	if m.session == nil || !m.session.IsAuthenticated() {
		return
	}

	prefs, err := m.client.UserPreferences(ctx)
	if err != nil {
		m.logger.Debug("preference fetch failed, using system theme", "error", err.Error())
		m.set(ModeSystem)
		return
	}
	if mode := Mode(prefs.Theme); mode.Valid() {
		m.set(mode)
	} else {
		m.set(ModeSystem)
	}
}

// SetMode records the preference locally and persists it server-side for
// authenticated users. Persistence is best effort.
func (m *Manager) SetMode(ctx context.Context, mode Mode) {
	if !mode.Valid() {
		return
	}
	m.set(mode)

	if m.session == nil || !m.session.IsAuthenticated() {
		return
	}
	if err := m.client.UpdateUserPreferences(ctx, api.Preferences{Theme: string(mode)}); err != nil {
		m.logger.Warn("failed to persist theme preference", "error", err.Error())
	}
}

// Toggle flips between light and dark, resolving system mode first.
func (m *Manager) Toggle(ctx context.Context) {
	if m.Dark() {
		m.SetMode(ctx, ModeLight)
	} else {
		m.SetMode(ctx, ModeDark)
	}
}

func (m *Manager) set(mode Mode) {
	m.mu.Lock()
	m.mode = mode
	m.mu.Unlock()
}

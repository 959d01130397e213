// Package session holds the current authenticated user and the operations
// that change it. A single Manager is constructed at application start and
// passed explicitly to every consumer; it is the only writer of its state.
package session

import (
	"context"
	"sync"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/errors"
	"github.com/portside-app/portside/internal/logging"
)

// Manager is the single source of truth for the session. It has two states:
// unresolved (identity check still in flight, Loading reports true) and
// resolved (a user, or nil for anonymous). Consumers must not render
// protected content while the state is unresolved.
type Manager struct {
	client *api.Client
	logger *logging.Logger

	mu      sync.RWMutex
	user    *api.User
	loading bool
}

// NewManager creates a Manager in the unresolved state.
func NewManager(client *api.Client, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Manager{
		client:  client,
		logger:  logger,
		loading: true,
	}
}

// Loading reports whether the initial identity check is still unresolved.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// User returns the current user, or nil when anonymous or unresolved.
func (m *Manager) User() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// IsAuthenticated reports whether a user is signed in.
func (m *Manager) IsAuthenticated() bool {
	return m.User() != nil
}

// Load performs the identity check and resolves the session. A failed check
// resolves to anonymous: not being signed in is a valid state, not an error.
func (m *Manager) Load(ctx context.Context) {
	user, err := m.client.Me(ctx)
	if err != nil {
		m.logger.Debug("identity check resolved anonymous", "error", err.Error())
		user = nil
	}

	m.mu.Lock()
	m.user = user
	m.loading = false
	m.mu.Unlock()
}

// Login posts credentials. On success the user is stored and returned; on
// failure the error propagates to the caller so the form can display it.
func (m *Manager) Login(ctx context.Context, email, password string) (*api.User, error) {
	user, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.user = user
	m.loading = false
	m.mu.Unlock()

	m.logger.WithUser(user.ID).Info("signed in")
	return user, nil
}

// Register creates a new account. It does not sign the user in.
func (m *Manager) Register(ctx context.Context, reg api.Registration) error {
	return m.client.Register(ctx, reg)
}

// Logout requests server-side invalidation, then clears the local user
// unconditionally. The client must never remain "signed in" after asking to
// leave, even when the server call fails.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.client.Logout(ctx)
	if err != nil {
		m.logger.Warn("logout request failed, clearing local session anyway", "error", err.Error())
	}

	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()

	return err
}

// Refresh re-fetches identity. Used after profile mutations that change the
// displayed identity, e.g. an avatar upload. Refresh failures keep the
// current user; an auth failure clears it.
func (m *Manager) Refresh(ctx context.Context) error {
	user, err := m.client.Me(ctx)
	if err != nil {
		if errors.IsAuthError(err) {
			m.mu.Lock()
			m.user = nil
			m.mu.Unlock()
		}
		return err
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return nil
}

// Expire clears the local user without a server round trip. The error views
// use it when the navigation guard lands on the session-expired route.
func (m *Manager) Expire() {
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
}

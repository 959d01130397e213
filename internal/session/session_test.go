package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/errors"
	"github.com/portside-app/portside/internal/logging"
)

func newManager(t *testing.T, handler http.Handler) *Manager {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL, nil, logging.NopLogger())
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}
	return NewManager(client, logging.NopLogger())
}

const userBody = `{"_id":"u1","firstName":"Grace","lastName":"Hopper","email":"grace@example.com"}`

func TestLoadResolvesUser(t *testing.T) {
	m := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(userBody))
	}))

	if !m.Loading() {
		t.Fatal("manager should start unresolved")
	}

	m.Load(context.Background())

	if m.Loading() {
		t.Error("Load should resolve the session")
	}
	if u := m.User(); u == nil || u.ID != "u1" {
		t.Errorf("User() = %+v, want u1", u)
	}
	if !m.IsAuthenticated() {
		t.Error("IsAuthenticated() should be true")
	}
}

func TestLoadFailureResolvesAnonymous(t *testing.T) {
	m := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	m.Load(context.Background())

	if m.Loading() {
		t.Error("a failed identity check must still resolve the session")
	}
	if m.User() != nil {
		t.Error("anonymous session should have a nil user")
	}
}

func TestLoginStoresUserOnSuccess(t *testing.T) {
	m := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":` + userBody + `}`))
	}))

	user, err := m.Login(context.Background(), "grace@example.com", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("returned user = %+v", user)
	}
	if m.User() == nil {
		t.Error("login should store the user")
	}
}

func TestLoginFailurePropagates(t *testing.T) {
	m := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid email or password"}`))
	}))

	_, err := m.Login(context.Background(), "grace@example.com", "wrong")
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *errors.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Invalid email or password" {
		t.Errorf("caller should receive the backend message, got %v", err)
	}
	if m.User() != nil {
		t.Error("failed login must not store a user")
	}
}

func TestLogoutAlwaysClearsUser(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server accepts",
			handler: func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/api/auth/me":
					w.Write([]byte(userBody))
				default:
					w.WriteHeader(http.StatusOK)
				}
			},
		},
		{
			name: "server rejects",
			handler: func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/api/auth/me":
					w.Write([]byte(userBody))
				default:
					w.WriteHeader(http.StatusInternalServerError)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager(t, tt.handler)
			m.Load(context.Background())
			if m.User() == nil {
				t.Fatal("precondition: user signed in")
			}

			m.Logout(context.Background())

			if m.User() != nil {
				t.Error("user must be nil after logout, regardless of server outcome")
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	var fail bool
	m := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(userBody))
	}))

	m.Load(context.Background())

	// Transient server failure keeps the current user.
	fail = true
	if err := m.Refresh(context.Background()); err == nil {
		t.Error("Refresh should surface the failure")
	}
	if m.User() == nil {
		t.Error("a server failure during refresh must not drop the session")
	}

	// Auth failure clears it.
	mAuth := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	mAuth.mu.Lock()
	mAuth.user = &api.User{ID: "u1"}
	mAuth.mu.Unlock()

	mAuth.Refresh(context.Background())
	if mAuth.User() != nil {
		t.Error("an auth failure during refresh must clear the session")
	}
}

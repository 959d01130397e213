package theme

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/logging"
	"github.com/portside-app/portside/internal/session"
)

func newFixture(t *testing.T, handler http.Handler) (*Manager, *session.Manager) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL, nil, logging.NopLogger())
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}
	sess := session.NewManager(client, logging.NopLogger())
	return NewManager(client, sess, ModeSystem, logging.NopLogger()), sess
}

func TestDarkResolution(t *testing.T) {
	m, _ := newFixture(t, http.NotFoundHandler())

	m.set(ModeDark)
	if !m.Dark() {
		t.Error("ModeDark should resolve dark")
	}

	m.set(ModeLight)
	if m.Dark() {
		t.Error("ModeLight should resolve light")
	}

	m.set(ModeSystem)
	m.darkTerminal = func() bool { return true }
	if !m.Dark() {
		t.Error("ModeSystem should follow the terminal probe")
	}
	m.darkTerminal = func() bool { return false }
	if m.Dark() {
		t.Error("ModeSystem should follow the terminal probe")
	}
}

func TestLoadAppliesServerPreference(t *testing.T) {
	m, sess := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/me":
			w.Write([]byte(`{"_id":"u1","firstName":"A","lastName":"B","email":"a@b.c"}`))
		case "/api/user/preferences":
			w.Write([]byte(`{"theme":"dark"}`))
		}
	}))

	// Anonymous: Load is a no-op.
	m.Load(context.Background())
	if m.Mode() != ModeSystem {
		t.Errorf("anonymous Load changed mode to %q", m.Mode())
	}

	sess.Load(context.Background())
	m.Load(context.Background())
	if m.Mode() != ModeDark {
		t.Errorf("Mode() = %q, want dark from server preference", m.Mode())
	}
}

func TestLoadFallsBackToSystem(t *testing.T) {
	m, sess := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/me":
			w.Write([]byte(`{"_id":"u1","firstName":"A","lastName":"B","email":"a@b.c"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))

	sess.Load(context.Background())
	m.set(ModeDark)
	m.Load(context.Background())

	if m.Mode() != ModeSystem {
		t.Errorf("Mode() = %q, want system fallback on fetch failure", m.Mode())
	}
}

func TestSetModePersistsForAuthenticated(t *testing.T) {
	var puts atomic.Int32
	var lastTheme atomic.Value

	m, sess := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/auth/me":
			w.Write([]byte(`{"_id":"u1","firstName":"A","lastName":"B","email":"a@b.c"}`))
		case r.URL.Path == "/api/user/preferences" && r.Method == http.MethodPut:
			puts.Add(1)
			var prefs api.Preferences
			json.NewDecoder(r.Body).Decode(&prefs)
			lastTheme.Store(prefs.Theme)
			w.WriteHeader(http.StatusOK)
		}
	}))

	// Anonymous changes stay local.
	m.SetMode(context.Background(), ModeDark)
	if puts.Load() != 0 {
		t.Error("anonymous SetMode must not call the backend")
	}

	sess.Load(context.Background())
	m.SetMode(context.Background(), ModeLight)
	if puts.Load() != 1 {
		t.Errorf("authenticated SetMode should persist, got %d PUTs", puts.Load())
	}
	if lastTheme.Load() != "light" {
		t.Errorf("persisted theme = %v, want light", lastTheme.Load())
	}

	// Invalid mode is ignored.
	m.SetMode(context.Background(), Mode("sepia"))
	if m.Mode() != ModeLight {
		t.Errorf("invalid mode should be ignored, got %q", m.Mode())
	}
}

func TestToggle(t *testing.T) {
	m, _ := newFixture(t, http.NotFoundHandler())
	m.darkTerminal = func() bool { return true }

	// System+dark terminal toggles to light.
	m.Toggle(context.Background())
	if m.Mode() != ModeLight {
		t.Errorf("Mode() = %q, want light", m.Mode())
	}
	m.Toggle(context.Background())
	if m.Mode() != ModeDark {
		t.Errorf("Mode() = %q, want dark", m.Mode())
	}
}

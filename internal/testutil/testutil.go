// Package testutil provides a scripted fake portal backend for tests that
// exercise several packages together. Individual package tests usually build
// their own minimal handlers; this fake covers the cross-cutting flows
// (session, preferences, dashboard collections) in one place.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// PortalServer is an in-memory portal backend. Handlers cover the auth,
// preference and dashboard endpoints; unknown paths 404.
type PortalServer struct {
	*httptest.Server

	mu       sync.Mutex
	signedIn bool
	theme    string
	requests []string
}

// User fixture returned by login and /api/auth/me.
const userBody = `{"_id":"u-test","firstName":"Test","lastName":"User","email":"test@example.com"}`

// Password accepted by the fake login endpoint.
const Password = "correct-password"

// NewPortalServer starts a fake portal backend. It is shut down when the
// test completes.
func NewPortalServer(t *testing.T) *PortalServer {
	t.Helper()

	ps := &PortalServer{theme: "light"}
	ps.Server = httptest.NewServer(http.HandlerFunc(ps.handle))
	t.Cleanup(ps.Close)
	return ps
}

// SignedIn controls whether the fake considers the client authenticated.
func (ps *PortalServer) SignedIn(v bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.signedIn = v
}

// Theme returns the last persisted theme preference.
func (ps *PortalServer) Theme() string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.theme
}

// Requests returns "METHOD path" for every request seen, in order.
func (ps *PortalServer) Requests() []string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return append([]string(nil), ps.requests...)
}

func (ps *PortalServer) handle(w http.ResponseWriter, r *http.Request) {
	ps.mu.Lock()
	ps.requests = append(ps.requests, r.Method+" "+r.URL.Path)
	signedIn := ps.signedIn
	ps.mu.Unlock()

	switch r.Method + " " + r.URL.Path {
	case "GET /api/auth/me":
		if !signedIn {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Not authenticated"}`))
			return
		}
		w.Write([]byte(userBody))

	case "POST /api/auth/login":
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != Password {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		ps.SignedIn(true)
		w.Write([]byte(`{"user":` + userBody + `}`))

	case "POST /api/auth/logout":
		ps.SignedIn(false)
		w.WriteHeader(http.StatusOK)

	case "GET /api/user/preferences":
		if !signedIn {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Not authenticated"}`))
			return
		}
		w.Write([]byte(`{"theme":"` + ps.Theme() + `"}`))

	case "PUT /api/user/preferences":
		if !signedIn {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Not authenticated"}`))
			return
		}
		var prefs struct {
			Theme string `json:"theme"`
		}
		json.NewDecoder(r.Body).Decode(&prefs)
		ps.mu.Lock()
		ps.theme = prefs.Theme
		ps.mu.Unlock()
		w.WriteHeader(http.StatusOK)

	case "GET /api/user/support-tickets":
		w.Write([]byte(`[{"_id":"t1","subject":"Login problem","status":"open","createdAt":"2026-08-01"}]`))

	case "GET /api/user/job-applications":
		w.Write([]byte(`[]`))

	case "GET /api/user/consultations":
		w.Write([]byte(`[{"_id":"c1","consultationType":"technical","status":"completed","estimatedPrice":100,"paymentCompleted":false,"preferredDate":"2026-09-01","preferredTime":"10:00","createdAt":"2026-08-01"}]`))

	case "GET /api/user/orders":
		w.Write([]byte(`{"orders":[{"_id":"o1","title":"Website","status":"active","createdAt":"2026-08-01"}]}`))

	case "GET /api/user/orders/stats":
		w.Write([]byte(`{"stats":{"total":1,"active":1,"pending":0,"completed":0}}`))

	case "GET /api/user/notifications":
		w.Write([]byte(`[{"id":"n1","title":"Order update","message":"Your order moved to active","read":false,"createdAt":"2026-08-02"}]`))

	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not found"}`))
	}
}

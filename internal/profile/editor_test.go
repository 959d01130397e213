package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/logging"
)

type fixture struct {
	editor *Editor

	saveFails   bool
	saves       atomic.Int32
	lastSaved   atomic.Value
	passwords   atomic.Int32
	avatarName  atomic.Value
	serverState api.Profile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{
		serverState: api.Profile{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Email:       "ada@example.com",
			Company:     "Analytical Engines Ltd",
			SocialLinks: map[string]string{"github": "ada"},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/user/profile" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(fx.serverState)
		case r.URL.Path == "/api/user/profile" && r.Method == http.MethodPut:
			if fx.saveFails {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"message":"Invalid profile"}`))
				return
			}
			fx.saves.Add(1)
			var p api.Profile
			json.NewDecoder(r.Body).Decode(&p)
			fx.lastSaved.Store(p)
			fx.serverState = p
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/api/user/profile/avatar":
			_, header, err := r.FormFile("avatar")
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			fx.avatarName.Store(header.Filename)
			fx.serverState.Avatar = "/uploads/" + header.Filename
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/api/auth/change-password":
			fx.passwords.Add(1)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL, nil, logging.NopLogger())
	require.NoError(t, err)
	fx.editor = NewEditor(client, logging.NopLogger())
	return fx
}

func TestCancelRestoresSnapshotExactly(t *testing.T) {
	fx := newFixture(t)
	e := fx.editor
	require.NoError(t, e.Load(context.Background()))

	require.NoError(t, e.Edit())
	e.Draft().FirstName = "Grace"
	e.Draft().Company = "Navy"
	e.Draft().SocialLinks["github"] = "ghopper"
	assert.True(t, e.Dirty())

	e.Cancel()
	assert.False(t, e.Editing())
	assert.False(t, e.Dirty())
	assert.Equal(t, "Ada", e.Draft().FirstName)
	assert.Equal(t, "Analytical Engines Ltd", e.Draft().Company)
	assert.Equal(t, "ada", e.Draft().SocialLinks["github"])
}

func TestDraftEditsNeverLeakIntoSnapshot(t *testing.T) {
	fx := newFixture(t)
	e := fx.editor
	require.NoError(t, e.Load(context.Background()))
	require.NoError(t, e.Edit())

	e.Draft().SocialLinks["github"] = "someone-else"
	assert.Equal(t, "ada", e.Original().SocialLinks["github"],
		"map edits on the draft must not alias the snapshot")
}

func TestSavePromotesDraft(t *testing.T) {
	fx := newFixture(t)
	e := fx.editor
	ctx := context.Background()
	require.NoError(t, e.Load(ctx))
	require.NoError(t, e.Edit())

	e.Draft().Bio = "First programmer"
	require.NoError(t, e.Save(ctx))

	assert.False(t, e.Editing())
	assert.Equal(t, "First programmer", e.Original().Bio)
	saved := fx.lastSaved.Load().(api.Profile)
	assert.Equal(t, "First programmer", saved.Bio)

	// A later Cancel restores the new snapshot, not the pre-save one.
	require.NoError(t, e.Edit())
	e.Draft().Bio = "scratch"
	e.Cancel()
	assert.Equal(t, "First programmer", e.Draft().Bio)
}

func TestSaveFailureKeepsEdits(t *testing.T) {
	fx := newFixture(t)
	fx.saveFails = true
	e := fx.editor
	ctx := context.Background()
	require.NoError(t, e.Load(ctx))
	require.NoError(t, e.Edit())

	e.Draft().Bio = "retry me"
	require.Error(t, e.Save(ctx))

	assert.True(t, e.Editing(), "a failed save stays in edit mode")
	assert.Equal(t, "retry me", e.Draft().Bio)
	assert.Empty(t, e.Original().Bio)

	fx.saveFails = false
	require.NoError(t, e.Save(ctx))
	assert.Equal(t, "retry me", e.Original().Bio)
}

func TestSaveValidation(t *testing.T) {
	fx := newFixture(t)
	e := fx.editor
	ctx := context.Background()
	require.NoError(t, e.Load(ctx))
	require.NoError(t, e.Edit())

	e.Draft().FirstName = "  "
	require.Error(t, e.Save(ctx))

	e.Draft().FirstName = "Ada"
	e.Draft().Email = "not-an-email"
	require.Error(t, e.Save(ctx))
	assert.Equal(t, int32(0), fx.saves.Load(), "invalid drafts never reach the backend")
}

func TestUploadAvatarRefreshes(t *testing.T) {
	fx := newFixture(t)
	e := fx.editor
	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	require.NoError(t, e.UploadAvatar(ctx, "me.png", strings.NewReader("png-bytes")))
	assert.Equal(t, "me.png", fx.avatarName.Load())
	assert.Equal(t, "/uploads/me.png", e.Original().Avatar)
}

func TestChangePasswordLocalChecks(t *testing.T) {
	fx := newFixture(t)
	e := fx.editor
	ctx := context.Background()

	require.Error(t, e.ChangePassword(ctx, "", "newpassword", "newpassword"))
	require.Error(t, e.ChangePassword(ctx, "old", "short", "short"))
	require.Error(t, e.ChangePassword(ctx, "old", "newpassword", "different"))
	assert.Equal(t, int32(0), fx.passwords.Load(), "local failures never reach the backend")

	require.NoError(t, e.ChangePassword(ctx, "old", "newpassword", "newpassword"))
	assert.Equal(t, int32(1), fx.passwords.Load())
}

func TestEditRequiresLoad(t *testing.T) {
	fx := newFixture(t)
	assert.Error(t, fx.editor.Edit())
	assert.Error(t, fx.editor.Save(context.Background()))
}

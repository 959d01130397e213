// Package profile implements the profile editor's two-copy edit model. The
// editor keeps the last-saved snapshot and a deep-copied draft; all form
// edits mutate the draft only, Cancel throws the draft away and restores the
// snapshot exactly, Save persists the draft and promotes it to the new
// snapshot. Account credential operations (password change, avatar upload)
// live here too since the profile view owns them.
package profile

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/errors"
	"github.com/portside-app/portside/internal/logging"
)

// Editor holds the snapshot/draft pair for one profile editing session. It
// is not safe for concurrent use; the UI event loop is its single caller.
type Editor struct {
	client *api.Client
	logger *logging.Logger

	original *api.Profile
	draft    *api.Profile
	editing  bool
}

// NewEditor creates an editor with no profile loaded.
func NewEditor(client *api.Client, logger *logging.Logger) *Editor {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Editor{client: client, logger: logger}
}

// Load fetches the profile and resets both copies to it. Any in-progress
// edits are discarded.
func (e *Editor) Load(ctx context.Context) error {
	p, err := e.client.Profile(ctx)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	e.original = p
	e.draft = p.Clone()
	e.editing = false
	return nil
}

// Editing reports whether the form is in edit mode.
func (e *Editor) Editing() bool { return e.editing }

// Loaded reports whether a profile has been fetched.
func (e *Editor) Loaded() bool { return e.original != nil }

// Original returns the last-saved snapshot. Callers must not mutate it.
func (e *Editor) Original() *api.Profile { return e.original }

// Draft returns the editable copy. Form fields bind to this; mutations here
// never touch the snapshot.
func (e *Editor) Draft() *api.Profile { return e.draft }

// Dirty reports whether the draft differs from the snapshot.
func (e *Editor) Dirty() bool {
	return !reflect.DeepEqual(e.original, e.draft)
}

// Edit enters edit mode, re-cloning the snapshot so a previous canceled
// session leaves no residue in the draft.
func (e *Editor) Edit() error {
	if e.original == nil {
		return errors.New("no profile loaded")
	}
	e.draft = e.original.Clone()
	e.editing = true
	return nil
}

// Cancel leaves edit mode and restores the draft to the exact snapshot.
func (e *Editor) Cancel() {
	e.draft = e.original.Clone()
	e.editing = false
}

// Save validates and persists the draft, then promotes it to the new
// snapshot. On failure both copies are left as they were, so the user's
// edits survive for a retry.
func (e *Editor) Save(ctx context.Context) error {
	if !e.editing {
		return errors.New("not in edit mode")
	}
	if err := e.validate(); err != nil {
		return err
	}

	if err := e.client.UpdateProfile(ctx, e.draft); err != nil {
		e.logger.Warn("profile save failed", "error", err.Error())
		return err
	}

	e.original = e.draft.Clone()
	e.editing = false
	return nil
}

func (e *Editor) validate() error {
	if strings.TrimSpace(e.draft.FirstName) == "" {
		return errors.New("first name is required")
	}
	if strings.TrimSpace(e.draft.LastName) == "" {
		return errors.New("last name is required")
	}
	if !strings.Contains(e.draft.Email, "@") {
		return errors.New("email address is not valid")
	}
	return nil
}

// UploadAvatar uploads a new avatar image and refreshes the snapshot so the
// new avatar path is visible immediately.
func (e *Editor) UploadAvatar(ctx context.Context, filename string, content io.Reader) error {
	if err := e.client.UploadAvatar(ctx, filename, content); err != nil {
		return fmt.Errorf("uploading avatar: %w", err)
	}
	return e.Load(ctx)
}

// ChangePassword changes the account password after checking the
// confirmation locally. The current password is verified server-side.
func (e *Editor) ChangePassword(ctx context.Context, current, next, confirm string) error {
	if current == "" || next == "" {
		return errors.New("current and new passwords are required")
	}
	if len(next) < 8 {
		return errors.New("new password must be at least 8 characters")
	}
	if next != confirm {
		return errors.New("new passwords do not match")
	}
	return e.client.ChangePassword(ctx, current, next)
}

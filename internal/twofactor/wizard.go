// Package twofactor implements the two-factor authentication enrollment
// wizard as an explicit finite-state machine. Every state is named, every
// transition goes through one table, and closing the wizard at any point
// wipes all in-memory secret material. The account's enabled flag changes
// only on a successful verify or disable; abandoning the wizard leaves it
// exactly as it was at open time.
package twofactor

import (
	"context"
	"regexp"
	"slices"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/errors"
	"github.com/portside-app/portside/internal/logging"
)

// Step is a wizard state.
type Step int

const (
	// StepClosed: no wizard dialog is open.
	StepClosed Step = iota
	// StepSetup: the secret and enrollment payload are displayed for
	// scanning into an authenticator app.
	StepSetup
	// StepVerify: waiting for the 6-digit code that proves possession.
	StepVerify
	// StepBackupCodes: terminal success; the one-time backup codes are
	// shown. They are not re-derivable from this screen.
	StepBackupCodes
	// StepDisableConfirm: 2FA is on and the user is confirming disablement
	// with their current password.
	StepDisableConfirm
)

// String returns the step name for logs and tests.
func (s Step) String() string {
	switch s {
	case StepClosed:
		return "closed"
	case StepSetup:
		return "setup"
	case StepVerify:
		return "verify"
	case StepBackupCodes:
		return "backup-codes"
	case StepDisableConfirm:
		return "disable-confirm"
	default:
		return "unknown"
	}
}

// transitions is the exhaustive transition table. Close (any step back to
// StepClosed) is always legal and handled separately.
var transitions = map[Step][]Step{
	StepClosed:         {StepSetup, StepDisableConfirm},
	StepSetup:          {StepVerify},
	StepVerify:         {StepBackupCodes},
	StepBackupCodes:    {},
	StepDisableConfirm: {},
}

var codePattern = regexp.MustCompile(`^\d{6}$`)

// Wizard drives 2FA enrollment and disablement. It is not safe for
// concurrent use; the UI event loop is its single caller.
type Wizard struct {
	client *api.Client
	logger *logging.Logger

	step        Step
	enabled     bool
	secret      string
	dataURL     string
	backupCodes []string
}

// NewWizard creates a closed wizard. enabled is the account's 2FA flag as
// currently known (fetched via LoadStatus or the security view).
func NewWizard(client *api.Client, logger *logging.Logger) *Wizard {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Wizard{client: client, logger: logger, step: StepClosed}
}

// LoadStatus fetches the account's 2FA enabled flag. Fetch failures leave
// the flag as-is; the security view shows the toggle from the last known
// state.
func (w *Wizard) LoadStatus(ctx context.Context) error {
	prefs, err := w.client.AuthPreferences(ctx)
	if err != nil {
		return err
	}
	w.enabled = prefs.TwoFactorAuth
	return nil
}

// Step returns the current wizard state.
func (w *Wizard) Step() Step { return w.step }

// Enabled returns the account's 2FA flag as currently known.
func (w *Wizard) Enabled() bool { return w.enabled }

// Secret returns the shared secret for manual entry, empty until setup
// succeeds.
func (w *Wizard) Secret() string { return w.secret }

// DataURL returns the scannable enrollment payload, empty until setup
// succeeds.
func (w *Wizard) DataURL() string { return w.dataURL }

// BackupCodes returns a copy of the one-time backup codes. Only populated
// at StepBackupCodes.
func (w *Wizard) BackupCodes() []string {
	return slices.Clone(w.backupCodes)
}

// Open starts the wizard. With 2FA disabled it moves to StepSetup and
// requests the enrollment secret; a setup failure surfaces inline and keeps
// the wizard open at StepSetup with no secret (Continue stays gated). With
// 2FA enabled it moves to StepDisableConfirm.
func (w *Wizard) Open(ctx context.Context) error {
	if w.enabled {
		if err := w.transition(StepDisableConfirm); err != nil {
			return err
		}
		return nil
	}

	if err := w.transition(StepSetup); err != nil {
		return err
	}

	setup, err := w.client.TwoFactorSetup(ctx)
	if err != nil {
		w.logger.Warn("2fa setup request failed", "error", err.Error())
		return err
	}
	w.secret = setup.Secret
	w.dataURL = setup.DataURL
	return nil
}

// RetrySetup re-requests the enrollment secret after a failed Open. Legal
// only at StepSetup while no secret has been received.
func (w *Wizard) RetrySetup(ctx context.Context) error {
	if w.step != StepSetup || w.secret != "" {
		return errors.ErrInvalidTransition
	}
	setup, err := w.client.TwoFactorSetup(ctx)
	if err != nil {
		return err
	}
	w.secret = setup.Secret
	w.dataURL = setup.DataURL
	return nil
}

// Continue advances from the setup screen to code verification. Gated on
// the secret having been received.
func (w *Wizard) Continue() error {
	if w.step != StepSetup {
		return errors.ErrInvalidTransition
	}
	if w.secret == "" {
		return errors.New("setup has not completed; no secret to verify against")
	}
	return w.transition(StepVerify)
}

// Verify posts the 6-digit code. Success stores the one-time backup codes,
// flips the enabled flag, and advances to StepBackupCodes. Failure keeps the
// wizard at StepVerify with the flag untouched; retries are unlimited.
func (w *Wizard) Verify(ctx context.Context, code string) error {
	if w.step != StepVerify {
		return errors.ErrInvalidTransition
	}
	if !codePattern.MatchString(code) {
		return errors.New("enter the 6-digit code from your authenticator app")
	}

	result, err := w.client.TwoFactorVerify(ctx, code)
	if err != nil {
		return err
	}

	w.backupCodes = slices.Clone(result.BackupCodes)
	w.enabled = true
	return w.transition(StepBackupCodes)
}

// Disable turns 2FA off after re-authenticating with the current password.
// Success clears the flag and closes the wizard; failure keeps the dialog
// open at StepDisableConfirm.
func (w *Wizard) Disable(ctx context.Context, password string) error {
	if w.step != StepDisableConfirm {
		return errors.ErrInvalidTransition
	}
	if password == "" {
		return errors.New("password is required to disable two-factor authentication")
	}

	if err := w.client.TwoFactorDisable(ctx, password); err != nil {
		return err
	}

	w.enabled = false
	w.Close()
	return nil
}

// Close abandons the wizard from any step and discards all in-memory
// secret, code and backup-code state. No partial enrollment persists
// client-side.
func (w *Wizard) Close() {
	w.step = StepClosed
	w.secret = ""
	w.dataURL = ""
	w.backupCodes = nil
}

// transition moves to the target step if the table allows it.
func (w *Wizard) transition(to Step) error {
	if !slices.Contains(transitions[w.step], to) {
		return errors.ErrInvalidTransition
	}
	w.logger.Debug("2fa wizard transition", "from", w.step.String(), "to", to.String())
	w.step = to
	return nil
}

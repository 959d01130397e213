package tui

import (
	"context"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/profile"
	"github.com/portside-app/portside/internal/tui/msg"
	"github.com/portside-app/portside/internal/tui/styles"
	"github.com/portside-app/portside/internal/twofactor"
)

// profileTab is a tab within the profile view.
type profileTab int

const (
	tabGeneral profileTab = iota
	tabSecurity
)

// profileField binds one editable draft field to the form.
type profileField struct {
	label string
	get   func(*api.Profile) string
	set   func(*api.Profile, string)
}

// profileFields is the general tab's form, in display order.
var profileFields = []profileField{
	{"First name", func(p *api.Profile) string { return p.FirstName }, func(p *api.Profile, v string) { p.FirstName = v }},
	{"Last name", func(p *api.Profile) string { return p.LastName }, func(p *api.Profile, v string) { p.LastName = v }},
	{"Email", func(p *api.Profile) string { return p.Email }, func(p *api.Profile, v string) { p.Email = v }},
	{"Phone", func(p *api.Profile) string { return p.Phone }, func(p *api.Profile, v string) { p.Phone = v }},
	{"Location", func(p *api.Profile) string { return p.Location }, func(p *api.Profile, v string) { p.Location = v }},
	{"Company", func(p *api.Profile) string { return p.Company }, func(p *api.Profile, v string) { p.Company = v }},
	{"Position", func(p *api.Profile) string { return p.Position }, func(p *api.Profile, v string) { p.Position = v }},
	{"Bio", func(p *api.Profile) string { return p.Bio }, func(p *api.Profile, v string) { p.Bio = v }},
	{"Website", func(p *api.Profile) string { return p.Website }, func(p *api.Profile, v string) { p.Website = v }},
}

// profileState is the profile screen: the general tab edits the draft
// profile, the security tab changes the password and drives the 2FA wizard.
type profileState struct {
	editor *profile.Editor
	wizard *twofactor.Wizard

	tab     profileTab
	loading bool
	err     error

	// General tab.
	fieldCursor  int
	editingField bool
	fieldInput   textinput.Model
	formMsg      string
	formErr      bool

	// Security tab: password form.
	pwInputs [3]textinput.Model
	pwFocus  int
	pwBusy   bool
	pwMsg    string
	pwErr    bool

	// Security tab: 2FA wizard.
	codeInput    textinput.Model
	disableInput textinput.Model
	wizardBusy   bool
	wizardErr    string

	// Clipboard fallback: text the user must copy by hand.
	manualCopy string
	copiedVia  string
}

func (s *profileState) initInputs() {
	s.fieldInput = textinput.New()
	s.fieldInput.CharLimit = 500
	s.fieldInput.Width = 50

	labels := [3]string{"current password", "new password", "confirm new password"}
	for i := range s.pwInputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
		in.CharLimit = 128
		in.Width = 40
		s.pwInputs[i] = in
	}

	s.codeInput = textinput.New()
	s.codeInput.Placeholder = "6-digit code"
	s.codeInput.CharLimit = 6
	s.codeInput.Width = 10

	s.disableInput = textinput.New()
	s.disableInput.Placeholder = "password"
	s.disableInput.EchoMode = textinput.EchoPassword
	s.disableInput.EchoCharacter = '*'
	s.disableInput.CharLimit = 128
	s.disableInput.Width = 40
}

// load fetches the profile and the 2FA status together.
func (s *profileState) load() tea.Cmd {
	if s.fieldInput.CharLimit == 0 {
		s.initInputs()
	}
	s.loading = true
	s.err = nil
	s.formMsg = ""
	s.pwMsg = ""
	editor, wizard := s.editor, s.wizard
	return func() tea.Msg {
		ctx := context.Background()
		if err := editor.Load(ctx); err != nil {
			return msg.ProfileLoadedMsg{Err: err}
		}
		// 2FA status is supplementary; the security tab falls back to the
		// last known flag when this fails.
		_ = wizard.LoadStatus(ctx)
		return msg.ProfileLoadedMsg{}
	}
}

func (s *profileState) applyLoad(result msg.ProfileLoadedMsg) {
	s.loading = false
	s.err = result.Err
}

// update handles all profile view keys.
func (s *profileState) update(m *Model, keyMsg tea.KeyMsg) tea.Cmd {
	if s.loading {
		return nil
	}

	// The 2FA wizard dialog captures input while open.
	if s.wizard.Step() != twofactor.StepClosed {
		return s.updateWizard(m, keyMsg)
	}

	switch keyMsg.String() {
	case "tab":
		if !s.editingField {
			s.tab = (s.tab + 1) % 2
			return nil
		}
	}

	if s.tab == tabGeneral {
		return s.updateGeneral(m, keyMsg)
	}
	return s.updateSecurity(m, keyMsg)
}

func (s *profileState) updateGeneral(m *Model, keyMsg tea.KeyMsg) tea.Cmd {
	if s.editingField {
		switch keyMsg.String() {
		case "enter":
			profileFields[s.fieldCursor].set(s.editor.Draft(), s.fieldInput.Value())
			s.editingField = false
			return nil
		case "esc":
			s.editingField = false
			return nil
		}
		var cmd tea.Cmd
		s.fieldInput, cmd = s.fieldInput.Update(keyMsg)
		return cmd
	}

	switch keyMsg.String() {
	case "up", "k":
		s.fieldCursor = clampCursor(s.fieldCursor-1, len(profileFields))
	case "down", "j":
		s.fieldCursor = clampCursor(s.fieldCursor+1, len(profileFields))
	case "e":
		if !s.editor.Editing() {
			if err := s.editor.Edit(); err != nil {
				s.formMsg, s.formErr = userMessage(err), true
			}
			return nil
		}
	case "enter":
		if s.editor.Editing() {
			s.editingField = true
			s.fieldInput.SetValue(profileFields[s.fieldCursor].get(s.editor.Draft()))
			return s.fieldInput.Focus()
		}
	case "s":
		if s.editor.Editing() {
			s.formMsg, s.formErr = "", false
			editor := s.editor
			return func() tea.Msg {
				return msg.ProfileSavedMsg{Err: editor.Save(context.Background())}
			}
		}
	case "esc":
		if s.editor.Editing() {
			s.editor.Cancel()
			s.formMsg, s.formErr = "Changes discarded", false
			return nil
		}
	}
	return nil
}

func (s *profileState) applySave(result msg.ProfileSavedMsg) {
	if result.Err != nil {
		s.formMsg, s.formErr = userMessage(result.Err), true
		return
	}
	s.formMsg, s.formErr = "Profile saved", false
}

func (s *profileState) updateSecurity(m *Model, keyMsg tea.KeyMsg) tea.Cmd {
	switch keyMsg.String() {
	case "up", "shift+tab":
		return s.focusPassword(s.pwFocus - 1)
	case "down":
		return s.focusPassword(s.pwFocus + 1)
	case "enter":
		if s.pwBusy {
			return nil
		}
		if s.pwFocus < 2 {
			return s.focusPassword(s.pwFocus + 1)
		}
		s.pwBusy = true
		s.pwMsg = ""
		editor := s.editor
		current, next, confirm := s.pwInputs[0].Value(), s.pwInputs[1].Value(), s.pwInputs[2].Value()
		return func() tea.Msg {
			return msg.PasswordChangedMsg{Err: editor.ChangePassword(context.Background(), current, next, confirm)}
		}
	case "2":
		// Only a shortcut while no password field is capturing digits.
		if !s.pwInputs[s.pwFocus].Focused() {
			if s.wizardBusy {
				return nil
			}
			s.wizardBusy = true
			s.wizardErr = ""
			s.manualCopy = ""
			s.copiedVia = ""
			wizard := s.wizard
			return func() tea.Msg {
				return msg.TwoFactorChangedMsg{Err: wizard.Open(context.Background())}
			}
		}
	}

	var cmd tea.Cmd
	s.pwInputs[s.pwFocus], cmd = s.pwInputs[s.pwFocus].Update(keyMsg)
	return cmd
}

func (s *profileState) focusPassword(i int) tea.Cmd {
	s.pwInputs[s.pwFocus].Blur()
	s.pwFocus = clampCursor(i, len(s.pwInputs))
	return s.pwInputs[s.pwFocus].Focus()
}

func (s *profileState) applyPasswordChange(result msg.PasswordChangedMsg) {
	s.pwBusy = false
	if result.Err != nil {
		s.pwMsg, s.pwErr = userMessage(result.Err), true
		return
	}
	s.pwMsg, s.pwErr = "Password changed", false
	for i := range s.pwInputs {
		s.pwInputs[i].SetValue("")
	}
}

func (s *profileState) updateWizard(m *Model, keyMsg tea.KeyMsg) tea.Cmd {
	if s.wizardBusy {
		// An in-flight wizard call owns the wizard state until its result
		// message lands; even esc waits for it.
		return nil
	}
	if keyMsg.String() == "esc" {
		// Abandoning the wizard wipes all pending enrollment state.
		s.wizard.Close()
		s.wizardErr = ""
		s.manualCopy = ""
		s.copiedVia = ""
		s.codeInput.SetValue("")
		s.disableInput.SetValue("")
		return nil
	}

	wizard := s.wizard
	switch s.wizard.Step() {
	case twofactor.StepSetup:
		switch keyMsg.String() {
		case "enter":
			if err := s.wizard.Continue(); err != nil {
				s.wizardErr = userMessage(err)
				return nil
			}
			s.wizardErr = ""
			return s.codeInput.Focus()
		case "r":
			s.wizardBusy = true
			return func() tea.Msg {
				return msg.TwoFactorChangedMsg{Err: wizard.RetrySetup(context.Background())}
			}
		case "c":
			return s.copyCmd(m, s.wizard.Secret())
		}

	case twofactor.StepVerify:
		if keyMsg.String() == "enter" {
			code := s.codeInput.Value()
			s.wizardBusy = true
			s.wizardErr = ""
			return func() tea.Msg {
				return msg.TwoFactorChangedMsg{Err: wizard.Verify(context.Background(), code)}
			}
		}
		var cmd tea.Cmd
		s.codeInput, cmd = s.codeInput.Update(keyMsg)
		return cmd

	case twofactor.StepBackupCodes:
		if keyMsg.String() == "c" {
			return s.copyCmd(m, strings.Join(s.wizard.BackupCodes(), "\n"))
		}

	case twofactor.StepDisableConfirm:
		if keyMsg.String() == "enter" {
			password := s.disableInput.Value()
			s.wizardBusy = true
			s.wizardErr = ""
			return func() tea.Msg {
				return msg.TwoFactorChangedMsg{Err: wizard.Disable(context.Background(), password)}
			}
		}
		var cmd tea.Cmd
		s.disableInput, cmd = s.disableInput.Update(keyMsg)
		return cmd
	}
	return nil
}

// copyCmd runs the clipboard chain for wizard material.
func (s *profileState) copyCmd(m *Model, text string) tea.Cmd {
	copier := m.deps.Copier
	return func() tea.Msg {
		method, err := copier.Copy(text)
		return msg.ClipboardResultMsg{Method: method, Text: text, Err: err}
	}
}

func (s *profileState) applyTwoFactor(result msg.TwoFactorChangedMsg) {
	s.wizardBusy = false
	if result.Err != nil {
		s.wizardErr = userMessage(result.Err)
		return
	}
	s.wizardErr = ""
	switch s.wizard.Step() {
	case twofactor.StepClosed:
		// Disable completed.
		s.disableInput.SetValue("")
	case twofactor.StepBackupCodes:
		s.codeInput.SetValue("")
	}
}

func (s *profileState) applyClipboard(result msg.ClipboardResultMsg) {
	if result.Err != nil {
		// Last resort: show the text and let the user select it.
		s.manualCopy = result.Text
		s.copiedVia = ""
		return
	}
	s.manualCopy = ""
	s.copiedVia = result.Method.String()
}

func (s *profileState) view(st styles.Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Profile"))
	b.WriteString("\n")

	general, security := st.TabInactive, st.TabInactive
	if s.tab == tabGeneral {
		general = st.TabActive
	} else {
		security = st.TabActive
	}
	b.WriteString(general.Render("General") + security.Render("Security") + "\n\n")

	switch {
	case s.loading:
		b.WriteString(st.Muted.Render("Loading profile..."))
	case s.err != nil:
		b.WriteString(st.Error.Render("Could not load profile: " + userMessage(s.err)))
		b.WriteString("\n" + st.Muted.Render("press r to retry"))
	case s.wizard.Step() != twofactor.StepClosed:
		b.WriteString(s.viewWizard(st))
	case s.tab == tabGeneral:
		b.WriteString(s.viewGeneral(st))
	default:
		b.WriteString(s.viewSecurity(st))
	}
	return b.String()
}

func (s *profileState) viewGeneral(st styles.Styles) string {
	var b strings.Builder
	draft := s.editor.Draft()
	if draft == nil {
		return st.Muted.Render("No profile data.")
	}

	for i, f := range profileFields {
		marker := "  "
		if i == s.fieldCursor {
			marker = st.Selected.Render("▸ ")
		}
		value := f.get(draft)
		if s.editingField && i == s.fieldCursor {
			b.WriteString(marker + st.FieldLabel.Render(padLabel(f.label)) + s.fieldInput.View() + "\n")
			continue
		}
		if value == "" {
			value = "-"
		}
		b.WriteString(marker + st.FieldLabel.Render(padLabel(f.label)) + st.FieldValue.Render(value) + "\n")
	}

	if len(draft.SocialLinks) > 0 {
		b.WriteString("\n" + st.PanelTitle.Render("Social links") + "\n")
		for _, k := range sortedKeys(draft.SocialLinks) {
			b.WriteString("  " + st.FieldLabel.Render(padLabel(k)) + st.FieldValue.Render(draft.SocialLinks[k]) + "\n")
		}
	}
	if len(draft.BusinessDetails) > 0 {
		b.WriteString("\n" + st.PanelTitle.Render("Business details") + "\n")
		for _, k := range sortedKeys(draft.BusinessDetails) {
			b.WriteString("  " + st.FieldLabel.Render(padLabel(k)) + st.FieldValue.Render(draft.BusinessDetails[k]) + "\n")
		}
	}

	if s.formMsg != "" {
		style := st.Success
		if s.formErr {
			style = st.Error
		}
		b.WriteString("\n" + style.Render(s.formMsg))
	}

	help := "e edit • tab security • esc home"
	if s.editor.Editing() {
		help = "enter edit field • s save • esc discard changes"
		if s.editor.Dirty() {
			b.WriteString("\n" + st.Warning.Render("Unsaved changes"))
		}
	}
	b.WriteString("\n" + st.HelpBar.Render(help))
	return b.String()
}

func (s *profileState) viewSecurity(st styles.Styles) string {
	var b strings.Builder

	b.WriteString(st.PanelTitle.Render("Change password") + "\n")
	for i := range s.pwInputs {
		b.WriteString(s.pwInputs[i].View() + "\n")
	}
	if s.pwBusy {
		b.WriteString(st.Muted.Render("Changing password...") + "\n")
	}
	if s.pwMsg != "" {
		style := st.Success
		if s.pwErr {
			style = st.Error
		}
		b.WriteString(style.Render(s.pwMsg) + "\n")
	}

	b.WriteString("\n" + st.PanelTitle.Render("Two-factor authentication") + "\n")
	if s.wizard.Enabled() {
		b.WriteString(st.Success.Render("Enabled") + "\n")
	} else {
		b.WriteString(st.Muted.Render("Disabled") + "\n")
	}
	if s.wizardErr != "" {
		b.WriteString(st.Error.Render(s.wizardErr) + "\n")
	}

	b.WriteString("\n" + st.HelpBar.Render("↑/↓ move • enter submit • 2 toggle two-factor • tab general • esc home"))
	return b.String()
}

func (s *profileState) viewWizard(st styles.Styles) string {
	var b strings.Builder

	switch s.wizard.Step() {
	case twofactor.StepSetup:
		b.WriteString(st.PanelTitle.Render("Set up two-factor authentication") + "\n\n")
		if s.wizard.Secret() == "" {
			b.WriteString(st.Error.Render("Could not start setup.") + "\n")
			if s.wizardErr != "" {
				b.WriteString(st.Muted.Render(s.wizardErr) + "\n")
			}
			b.WriteString("\n" + st.HelpBar.Render("r retry • esc cancel"))
			break
		}
		b.WriteString(st.FieldLabel.Render("Add this secret to your authenticator app:") + "\n")
		b.WriteString(st.FieldValue.Bold(true).Render(s.wizard.Secret()) + "\n\n")
		b.WriteString(st.Muted.Render("Enrollment QR payload: "+s.wizard.DataURL()) + "\n")
		if s.copiedVia != "" {
			b.WriteString(st.Success.Render("Copied via "+s.copiedVia) + "\n")
		}
		if s.manualCopy != "" {
			b.WriteString(st.Warning.Render("Clipboard unavailable, copy manually:") + "\n")
			b.WriteString(st.ContentBox.Render(s.manualCopy) + "\n")
		}
		b.WriteString("\n" + st.HelpBar.Render("c copy secret • enter continue • esc cancel"))

	case twofactor.StepVerify:
		b.WriteString(st.PanelTitle.Render("Verify your authenticator") + "\n\n")
		b.WriteString(st.FieldLabel.Render("Enter the 6-digit code:") + "\n")
		b.WriteString(s.codeInput.View() + "\n")
		if s.wizardBusy {
			b.WriteString(st.Muted.Render("Verifying...") + "\n")
		}
		if s.wizardErr != "" {
			b.WriteString(st.Error.Render(s.wizardErr) + "\n")
		}
		b.WriteString("\n" + st.HelpBar.Render("enter verify • esc cancel"))

	case twofactor.StepBackupCodes:
		b.WriteString(st.PanelTitle.Render("Two-factor authentication is on") + "\n\n")
		b.WriteString(st.FieldLabel.Render("Save these one-time backup codes, they are not shown again:") + "\n")
		for _, code := range s.wizard.BackupCodes() {
			b.WriteString(st.FieldValue.Bold(true).Render(code) + "\n")
		}
		if s.copiedVia != "" {
			b.WriteString(st.Success.Render("Copied via "+s.copiedVia) + "\n")
		}
		if s.manualCopy != "" {
			b.WriteString(st.Warning.Render("Clipboard unavailable, copy manually:") + "\n")
			b.WriteString(st.ContentBox.Render(s.manualCopy) + "\n")
		}
		b.WriteString("\n" + st.HelpBar.Render("c copy codes • esc done"))

	case twofactor.StepDisableConfirm:
		b.WriteString(st.PanelTitle.Render("Disable two-factor authentication") + "\n\n")
		b.WriteString(st.FieldLabel.Render("Confirm with your password:") + "\n")
		b.WriteString(s.disableInput.View() + "\n")
		if s.wizardBusy {
			b.WriteString(st.Muted.Render("Disabling...") + "\n")
		}
		if s.wizardErr != "" {
			b.WriteString(st.Error.Render(s.wizardErr) + "\n")
		}
		b.WriteString("\n" + st.HelpBar.Render("enter disable • esc cancel"))
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func padLabel(label string) string {
	const width = 12
	if len(label) >= width {
		return label + " "
	}
	return label + strings.Repeat(" ", width-len(label))
}

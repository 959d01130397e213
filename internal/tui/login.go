package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/portside-app/portside/internal/tui/styles"
)

// loginState is the sign-in form: email and password inputs plus the last
// inline error.
type loginState struct {
	input    textinput.Model
	password textinput.Model
	focused  int
	busy     bool
	errText  string
}

func newLoginState() loginState {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.CharLimit = 128
	password.Width = 40

	return loginState{input: email, password: password}
}

// update handles form keys and returns a login command on submit.
func (s *loginState) update(m *Model, keyMsg tea.KeyMsg) tea.Cmd {
	if s.busy {
		return nil
	}

	switch keyMsg.String() {
	case "tab", "shift+tab", "up", "down":
		s.focused = (s.focused + 1) % 2
		if s.focused == 0 {
			s.password.Blur()
			return s.input.Focus()
		}
		s.input.Blur()
		return s.password.Focus()

	case "enter":
		email := strings.TrimSpace(s.input.Value())
		password := s.password.Value()
		if email == "" || password == "" {
			s.errText = "Email and password are required"
			return nil
		}
		s.busy = true
		s.errText = ""
		return m.loginCmd(email, password)
	}

	var cmd tea.Cmd
	if s.focused == 0 {
		s.input, cmd = s.input.Update(keyMsg)
	} else {
		s.password, cmd = s.password.Update(keyMsg)
	}
	return cmd
}

// finish records the result of a login attempt.
func (s *loginState) finish(err error) {
	s.busy = false
	if err != nil {
		s.errText = userMessage(err)
		return
	}
	s.password.SetValue("")
	s.errText = ""
}

func (s *loginState) view(st styles.Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Sign in to Portside"))
	b.WriteString("\n\n")
	b.WriteString(st.FieldLabel.Render("Email") + "\n" + s.input.View() + "\n\n")
	b.WriteString(st.FieldLabel.Render("Password") + "\n" + s.password.View() + "\n")
	if s.busy {
		b.WriteString("\n" + st.Muted.Render("Signing in..."))
	}
	if s.errText != "" {
		b.WriteString("\n" + st.Error.Render(s.errText))
	}
	b.WriteString("\n" + st.HelpBar.Render("enter submit • tab switch field • ctrl+c quit"))
	return st.ContentBox.Render(b.String())
}

package tui

import (
	"strings"

	"github.com/portside-app/portside/internal/tui/styles"
)

// The error pages are the TUI's equivalent of the portal's dedicated error
// routes: mutating requests that fail with an expired session or a server
// fault land here instead of surfacing inline.

func viewSessionExpired(st styles.Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Session expired"))
	b.WriteString("\n")
	b.WriteString(st.FieldValue.Render("Your session has ended. Sign in again to continue.") + "\n")
	b.WriteString(st.Muted.Render("Nothing you submitted was lost server-side; unsaved local edits are gone.") + "\n")
	b.WriteString("\n" + st.HelpBar.Render("enter sign in • q quit"))
	return st.ContentBox.Render(b.String())
}

func viewServerError(st styles.Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Something went wrong"))
	b.WriteString("\n")
	b.WriteString(st.FieldValue.Render("The server could not complete your request.") + "\n")
	b.WriteString(st.Muted.Render("This is on our side. Please try again in a moment.") + "\n")
	b.WriteString("\n" + st.HelpBar.Render("enter sign in again • q quit"))
	return st.ContentBox.Render(b.String())
}

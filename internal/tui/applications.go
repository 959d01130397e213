package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/tui/msg"
	"github.com/portside-app/portside/internal/tui/styles"
)

// applicationsState is the full job application list.
type applicationsState struct {
	loading      bool
	err          error
	applications []api.JobApplication
	cursor       int
}

func (s *applicationsState) load(client *api.Client) tea.Cmd {
	s.loading = true
	s.err = nil
	return func() tea.Msg {
		applications, err := client.JobApplications(context.Background())
		return msg.ApplicationsLoadedMsg{Applications: applications, Err: err}
	}
}

func (s *applicationsState) apply(result msg.ApplicationsLoadedMsg) {
	s.loading = false
	s.err = result.Err
	if result.Err == nil {
		s.applications = result.Applications
		s.cursor = clampCursor(s.cursor, len(s.applications))
	}
}

func (s *applicationsState) moveCursor(delta int) {
	s.cursor = clampCursor(s.cursor+delta, len(s.applications))
}

func (s *applicationsState) view(st styles.Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Job Applications"))
	b.WriteString("\n")

	switch {
	case s.loading:
		b.WriteString(st.Muted.Render("Loading applications..."))
	case s.err != nil:
		b.WriteString(st.Error.Render("Could not load applications: " + userMessage(s.err)))
		b.WriteString("\n" + st.Muted.Render("press r to retry"))
	case len(s.applications) == 0:
		b.WriteString(st.Muted.Render("You have not applied to any positions."))
	default:
		for i, a := range s.applications {
			marker := "  "
			if i == s.cursor {
				marker = st.Selected.Render("▸ ")
			}
			b.WriteString(fmt.Sprintf("%s%s %s\n", marker,
				st.Badge(a.CurrentStatus()), st.FieldValue.Render(a.Position)))
			if i == s.cursor {
				detail := "    "
				if a.Department != "" {
					detail += st.FieldLabel.Render("department ") + st.FieldValue.Render(a.Department) + "  "
				}
				if a.ExperienceLevel != "" {
					detail += st.FieldLabel.Render("level ") + st.FieldValue.Render(a.ExperienceLevel) + "  "
				}
				detail += st.Muted.Render("applied " + a.CreatedAt)
				b.WriteString(detail + "\n")
			}
		}
	}
	b.WriteString("\n" + st.HelpBar.Render("↑/↓ select • r refresh • esc home"))
	return b.String()
}

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/portside-app/portside/internal/payment"
	"github.com/portside-app/portside/internal/processor"
	"github.com/portside-app/portside/internal/tui/msg"
	"github.com/portside-app/portside/internal/tui/styles"
)

// paymentState is the consultation checkout screen wrapping one
// payment.Flow. Card details live only in the form inputs and are handed
// straight to the processor.
type paymentState struct {
	flow    *payment.Flow
	inputs  [4]textinput.Model
	focus   int
	busy    bool
	errText string
}

// open starts a checkout for the consultation and returns the Start command.
func (s *paymentState) open(m *Model, consultationID string) tea.Cmd {
	s.flow = payment.NewFlow(m.deps.Client, m.deps.Confirmer, consultationID, m.deps.Logger)
	s.busy = false
	s.errText = ""
	s.initInputs()

	flow := s.flow
	return func() tea.Msg {
		return msg.PaymentStartedMsg{Err: flow.Start(context.Background())}
	}
}

func (s *paymentState) initInputs() {
	placeholders := [4]string{"card number", "MM", "YYYY", "CVC"}
	widths := [4]int{22, 4, 6, 5}
	limits := [4]int{23, 2, 4, 4}
	for i := range s.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Width = widths[i]
		in.CharLimit = limits[i]
		s.inputs[i] = in
	}
	s.focus = 0
	s.inputs[0].Focus()
}

func (s *paymentState) update(m *Model, keyMsg tea.KeyMsg) tea.Cmd {
	if s.flow == nil || s.busy {
		return nil
	}

	switch s.flow.Phase() {
	case payment.PhaseComplete, payment.PhaseFailed:
		if keyMsg.String() == "enter" || keyMsg.String() == "esc" {
			return m.navigate(ViewConsultations)
		}
		return nil
	case payment.PhaseLoading:
		return nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		return s.focusInput(s.focus + 1)
	case "shift+tab", "up":
		return s.focusInput(s.focus - 1)
	case "enter":
		card, err := s.card()
		if err != nil {
			s.errText = err.Error()
			return nil
		}
		s.busy = true
		s.errText = ""
		flow := s.flow
		return func() tea.Msg {
			return msg.PaymentConfirmedMsg{Err: flow.Confirm(context.Background(), card)}
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(keyMsg)
	return cmd
}

func (s *paymentState) focusInput(i int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = clampCursor(i, len(s.inputs))
	return s.inputs[s.focus].Focus()
}

// card assembles the processor card from the form. Numeric parse failures
// become zero values and fail the card's own validation with a clearer
// message than strconv's.
func (s *paymentState) card() (processor.Card, error) {
	month, _ := strconv.Atoi(strings.TrimSpace(s.inputs[1].Value()))
	year, _ := strconv.Atoi(strings.TrimSpace(s.inputs[2].Value()))
	card := processor.Card{
		Number:   strings.TrimSpace(s.inputs[0].Value()),
		ExpMonth: month,
		ExpYear:  year,
		CVC:      strings.TrimSpace(s.inputs[3].Value()),
	}
	return card, card.Validate()
}

func (s *paymentState) applyStarted(result msg.PaymentStartedMsg) {
	if result.Err != nil {
		s.errText = userMessage(result.Err)
	}
}

func (s *paymentState) applyConfirmed(result msg.PaymentConfirmedMsg) {
	s.busy = false
	if result.Err != nil {
		// Declines and backend confirmation failures surface inline; the
		// form stays open for a retry.
		s.errText = userMessage(result.Err)
		return
	}
	s.errText = ""
}

func (s *paymentState) view(st styles.Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Consultation Payment"))
	b.WriteString("\n")

	if s.flow == nil {
		return b.String() + st.Muted.Render("No payment in progress.")
	}

	switch s.flow.Phase() {
	case payment.PhaseLoading:
		b.WriteString(st.Muted.Render("Preparing payment..."))

	case payment.PhaseFailed:
		b.WriteString(st.Error.Render("This payment cannot proceed."))
		if s.errText != "" {
			b.WriteString("\n" + st.Muted.Render(s.errText))
		}
		b.WriteString("\n" + st.HelpBar.Render("enter back to consultations"))

	case payment.PhaseComplete:
		b.WriteString(st.Success.Render("Payment complete. Thank you!"))
		if c := s.flow.Consultation(); c != nil {
			b.WriteString("\n" + st.Muted.Render(c.ConsultationType+" consultation on "+c.PreferredDate))
		}
		b.WriteString("\n" + st.HelpBar.Render("enter back to consultations"))

	case payment.PhaseReady:
		quote := s.flow.Quote()
		if c := s.flow.Consultation(); c != nil {
			b.WriteString(st.FieldValue.Render(c.ConsultationType) +
				st.Muted.Render("  "+c.PreferredDate+" "+c.PreferredTime) + "\n\n")
		}
		b.WriteString(fmt.Sprintf("%s $%.2f\n%s $%.2f\n%s $%.2f\n\n",
			st.FieldLabel.Render("Subtotal    "), quote.Base,
			st.FieldLabel.Render("Tax (10%)   "), quote.Tax,
			st.FieldLabel.Render("Total       "), quote.Total))

		b.WriteString(s.inputs[0].View() + "\n")
		b.WriteString(s.inputs[1].View() + " / " + s.inputs[2].View() + "   " + s.inputs[3].View() + "\n")

		if s.busy {
			b.WriteString("\n" + st.Muted.Render("Processing payment..."))
		}
		if s.errText != "" {
			b.WriteString("\n" + st.Error.Render(s.errText))
		}
		b.WriteString("\n" + st.HelpBar.Render("tab next field • enter pay • esc cancel"))
	}
	return b.String()
}

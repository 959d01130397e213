// Package payment drives the consultation checkout pipeline: fetch the
// consultation, short-circuit if it is already paid, create a payment intent
// on our backend, confirm the card with the processor, then record the
// confirmation on our backend. Tax is applied on top of the estimated price
// at a flat 10%.
package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/errors"
	"github.com/portside-app/portside/internal/logging"
	"github.com/portside-app/portside/internal/processor"
)

// TaxRate is the flat tax applied on top of the consultation's base price.
const TaxRate = 0.10

// Phase is where the flow currently is.
type Phase int

const (
	// PhaseLoading: fetching the consultation or creating the intent.
	PhaseLoading Phase = iota
	// PhaseReady: the payment form is usable; Confirm may be called.
	PhaseReady
	// PhaseComplete: the payment succeeded, or the consultation was already
	// paid when the flow started.
	PhaseComplete
	// PhaseFailed: the flow could not reach a usable form (consultation
	// missing, intent creation failed). Card declines do NOT land here; they
	// surface inline and the flow stays at PhaseReady.
	PhaseFailed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseComplete:
		return "complete"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Quote is the price breakdown shown next to the payment form.
type Quote struct {
	Base  float64
	Tax   float64
	Total float64
}

// NewQuote computes the breakdown for a base price. Amounts are rounded to
// cents independently so the displayed lines always sum.
func NewQuote(base float64) Quote {
	tax := roundCents(base * TaxRate)
	return Quote{Base: roundCents(base), Tax: tax, Total: roundCents(base) + tax}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Confirmer is the processor-side half of checkout, satisfied by
// processor.Client.
type Confirmer interface {
	ConfirmCardPayment(ctx context.Context, clientSecret string, card processor.Card) (processor.Intent, error)
}

// Flow is one checkout attempt for one consultation. It is not safe for
// concurrent use; the UI event loop is its single caller.
type Flow struct {
	client    *api.Client
	confirmer Confirmer
	logger    *logging.Logger

	consultationID string
	phase          Phase
	consultation   *api.Consultation
	clientSecret   string
}

// NewFlow creates a checkout flow for the given consultation.
func NewFlow(client *api.Client, confirmer Confirmer, consultationID string, logger *logging.Logger) *Flow {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Flow{
		client:         client,
		confirmer:      confirmer,
		logger:         logger,
		consultationID: consultationID,
		phase:          PhaseLoading,
	}
}

// Phase returns the flow's current phase.
func (f *Flow) Phase() Phase { return f.phase }

// Consultation returns the fetched consultation, nil before Start succeeds.
func (f *Flow) Consultation() *api.Consultation { return f.consultation }

// Quote returns the price breakdown, zero before Start succeeds.
func (f *Flow) Quote() Quote {
	if f.consultation == nil {
		return Quote{}
	}
	return NewQuote(f.consultation.EstimatedPrice)
}

// Start fetches the consultation and prepares the payment form. An already
// paid consultation completes immediately with no intent ever created. A
// fetch or intent-creation failure moves to PhaseFailed.
func (f *Flow) Start(ctx context.Context) error {
	if f.phase != PhaseLoading {
		return errors.New("payment flow already started")
	}

	consultation, err := f.client.Consultation(ctx, f.consultationID)
	if err != nil {
		f.phase = PhaseFailed
		return fmt.Errorf("loading consultation: %w", err)
	}
	f.consultation = consultation

	if consultation.PaymentCompleted {
		f.logger.Info("consultation already paid", "consultation", f.consultationID)
		f.phase = PhaseComplete
		return nil
	}

	intent, err := f.client.CreatePaymentIntent(ctx, f.consultationID)
	if err != nil {
		f.phase = PhaseFailed
		return fmt.Errorf("creating payment intent: %w", err)
	}
	f.clientSecret = intent.ClientSecret
	f.phase = PhaseReady
	return nil
}

// Confirm runs the card through the processor and then records the
// confirmation on our backend. Any failure keeps the flow at PhaseReady so
// the user can fix the card and retry; only full success completes the flow.
func (f *Flow) Confirm(ctx context.Context, card processor.Card) error {
	if f.phase != PhaseReady {
		return errors.New("payment form is not ready")
	}

	intent, err := f.confirmer.ConfirmCardPayment(ctx, f.clientSecret, card)
	if err != nil {
		f.logger.Warn("card confirmation failed",
			"consultation", f.consultationID, "error", err.Error())
		return err
	}

	if err := f.client.ConfirmPayment(ctx, f.consultationID, intent.ID); err != nil {
		// The processor has the money but our backend missed the memo. Keep
		// the form open; the backend dedupes by intent ID on retry.
		f.logger.Error("backend payment confirmation failed",
			"consultation", f.consultationID, "intent", intent.ID, "error", err.Error())
		return fmt.Errorf("recording payment: %w", err)
	}

	f.phase = PhaseComplete
	return nil
}

package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/errors"
	"github.com/portside-app/portside/internal/logging"
	"github.com/portside-app/portside/internal/processor"
)

var testCard = processor.Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}

// fakeConfirmer scripts the processor half of checkout.
type fakeConfirmer struct {
	declines bool
	calls    int
}

func (f *fakeConfirmer) ConfirmCardPayment(_ context.Context, clientSecret string, _ processor.Card) (processor.Intent, error) {
	f.calls++
	if f.declines {
		return processor.Intent{}, errors.ErrPaymentDeclined
	}
	return processor.Intent{ID: "pi_123", Status: "succeeded"}, nil
}

type fixture struct {
	flow      *Flow
	confirmer *fakeConfirmer

	intentCreates  atomic.Int32
	confirms       atomic.Int32
	confirmFails   bool
	alreadyPaid    bool
	missingConsult bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{confirmer: &fakeConfirmer{}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/consultations/c1":
			if fx.missingConsult {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"message":"Consultation not found"}`))
				return
			}
			paid := "false"
			if fx.alreadyPaid {
				paid = "true"
			}
			w.Write([]byte(`{"_id":"c1","consultationType":"technical","status":"completed","estimatedPrice":100,"paymentCompleted":` + paid + `,"createdAt":"2026-08-01"}`))
		case "/api/payments/create-payment-intent":
			fx.intentCreates.Add(1)
			w.Write([]byte(`{"clientSecret":"pi_123_secret_xyz"}`))
		case "/api/payments/confirm-payment":
			fx.confirms.Add(1)
			if fx.confirmFails {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"message":"Failed to confirm payment"}`))
				return
			}
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL, nil, logging.NopLogger())
	require.NoError(t, err)
	fx.flow = NewFlow(client, fx.confirmer, "c1", logging.NopLogger())
	return fx
}

func TestQuoteBreakdown(t *testing.T) {
	q := NewQuote(100)
	assert.Equal(t, 100.0, q.Base)
	assert.Equal(t, 10.0, q.Tax)
	assert.Equal(t, 110.0, q.Total)

	q = NewQuote(49.99)
	assert.Equal(t, 49.99, q.Base)
	assert.Equal(t, 5.0, q.Tax)
	assert.Equal(t, 54.99, q.Total)
}

func TestHappyCheckout(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.flow.Start(ctx))
	assert.Equal(t, PhaseReady, fx.flow.Phase())
	assert.Equal(t, 110.0, fx.flow.Quote().Total)

	require.NoError(t, fx.flow.Confirm(ctx, testCard))
	assert.Equal(t, PhaseComplete, fx.flow.Phase())
	assert.Equal(t, int32(1), fx.confirms.Load())
}

func TestAlreadyPaidShortCircuits(t *testing.T) {
	fx := newFixture(t)
	fx.alreadyPaid = true

	require.NoError(t, fx.flow.Start(context.Background()))
	assert.Equal(t, PhaseComplete, fx.flow.Phase())
	assert.Equal(t, int32(0), fx.intentCreates.Load(), "no intent for an already paid consultation")

	// The form never opens, so Confirm is illegal.
	assert.Error(t, fx.flow.Confirm(context.Background(), testCard))
}

func TestMissingConsultationFails(t *testing.T) {
	fx := newFixture(t)
	fx.missingConsult = true

	require.Error(t, fx.flow.Start(context.Background()))
	assert.Equal(t, PhaseFailed, fx.flow.Phase())
	assert.Error(t, fx.flow.Confirm(context.Background(), testCard))
}

func TestDeclineKeepsFormOpen(t *testing.T) {
	fx := newFixture(t)
	fx.confirmer.declines = true
	ctx := context.Background()

	require.NoError(t, fx.flow.Start(ctx))

	err := fx.flow.Confirm(ctx, testCard)
	require.ErrorIs(t, err, errors.ErrPaymentDeclined)
	assert.Equal(t, PhaseReady, fx.flow.Phase(), "a decline keeps the form usable")
	assert.Equal(t, int32(0), fx.confirms.Load(), "declines never reach the backend")

	// Retry with a working card.
	fx.confirmer.declines = false
	require.NoError(t, fx.flow.Confirm(ctx, testCard))
	assert.Equal(t, PhaseComplete, fx.flow.Phase())
}

func TestBackendConfirmFailureKeepsFormOpen(t *testing.T) {
	fx := newFixture(t)
	fx.confirmFails = true
	ctx := context.Background()

	require.NoError(t, fx.flow.Start(ctx))
	require.Error(t, fx.flow.Confirm(ctx, testCard))
	assert.Equal(t, PhaseReady, fx.flow.Phase())

	fx.confirmFails = false
	require.NoError(t, fx.flow.Confirm(ctx, testCard))
	assert.Equal(t, PhaseComplete, fx.flow.Phase())
	assert.Equal(t, 2, fx.confirmer.calls)
}

func TestStartIsSingleShot(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.flow.Start(context.Background()))
	assert.Error(t, fx.flow.Start(context.Background()))
}

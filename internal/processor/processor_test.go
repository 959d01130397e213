package processor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/portside-app/portside/internal/errors"
	"github.com/portside-app/portside/internal/logging"
)

var validCard = Card{Number: "4242 4242 4242 4242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}

func newClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, "pk_test_abc", logging.NopLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestConfirmSuccess(t *testing.T) {
	var gotPath, gotSecret, gotNumber string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		r.ParseForm()
		gotSecret = r.PostFormValue("client_secret")
		gotNumber = r.PostFormValue("payment_method_data[card][number]")
		if user, _, _ := r.BasicAuth(); user != "pk_test_abc" {
			t.Errorf("auth user = %q, want publishable key", user)
		}
		w.Write([]byte(`{"id":"pi_123","status":"succeeded"}`))
	}))

	intent, err := c.ConfirmCardPayment(context.Background(), "pi_123_secret_xyz", validCard)
	if err != nil {
		t.Fatalf("ConfirmCardPayment() error = %v", err)
	}
	if !intent.Succeeded() {
		t.Errorf("intent status = %q, want succeeded", intent.Status)
	}
	if gotPath != "/v1/payment_intents/pi_123/confirm" {
		t.Errorf("path = %q", gotPath)
	}
	if gotSecret != "pi_123_secret_xyz" {
		t.Errorf("client_secret = %q", gotSecret)
	}
	if gotNumber != "4242424242424242" {
		t.Errorf("card number should be sent without spaces, got %q", gotNumber)
	}
}

func TestDeclineCarriesProcessorMessage(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"code":"card_declined","message":"Your card was declined."}}`))
	}))

	_, err := c.ConfirmCardPayment(context.Background(), "pi_123_secret_xyz", validCard)
	if !errors.Is(err, errors.ErrPaymentDeclined) {
		t.Fatalf("err = %v, want ErrPaymentDeclined", err)
	}
	if got := err.Error(); got != "payment declined: Your card was declined." {
		t.Errorf("err message = %q", got)
	}
}

func TestNonSucceededStatusIsDecline(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"pi_123","status":"requires_action"}`))
	}))

	_, err := c.ConfirmCardPayment(context.Background(), "pi_123_secret_xyz", validCard)
	if !errors.Is(err, errors.ErrPaymentDeclined) {
		t.Fatalf("err = %v, want ErrPaymentDeclined", err)
	}
}

func TestLocalCardValidation(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid cards must never reach the processor")
	}))

	cases := []struct {
		name string
		card Card
	}{
		{"short number", Card{Number: "4242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}},
		{"letters in number", Card{Number: "4242abcd42424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}},
		{"bad month", Card{Number: "4242424242424242", ExpMonth: 13, ExpYear: 2030, CVC: "123"}},
		{"two-digit year", Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 30, CVC: "123"}},
		{"bad cvc", Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "12"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := c.ConfirmCardPayment(context.Background(), "pi_1_secret_2", tc.card); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMalformedClientSecret(t *testing.T) {
	c := newClient(t, http.NotFoundHandler())
	for _, secret := range []string{"", "pi_123", "secret_only", "pi__secret_x"} {
		if _, err := c.ConfirmCardPayment(context.Background(), secret, validCard); err == nil {
			t.Errorf("secret %q should be rejected", secret)
		}
	}
}

func TestRequiresPublishableKey(t *testing.T) {
	if _, err := New("", "", logging.NopLogger()); err == nil {
		t.Error("New() should require a publishable key")
	}
}

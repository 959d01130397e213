// Package processor talks to the card processor's public API to confirm
// payment intents. Our backend creates the intent and hands the client a
// client secret; the card details go straight from this process to the
// processor and are never sent to our own backend.
package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/portside-app/portside/internal/errors"
	"github.com/portside-app/portside/internal/logging"
)

// DefaultBaseURL is the processor's public API endpoint.
const DefaultBaseURL = "https://api.stripe.com"

var (
	numberPattern = regexp.MustCompile(`^\d{12,19}$`)
	cvcPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

// Card is the card details collected from the payment form.
type Card struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

// Validate checks the card fields locally before any network call.
func (c Card) Validate() error {
	if !numberPattern.MatchString(strings.ReplaceAll(c.Number, " ", "")) {
		return errors.New("card number must be 12 to 19 digits")
	}
	if c.ExpMonth < 1 || c.ExpMonth > 12 {
		return errors.New("expiration month must be between 1 and 12")
	}
	if c.ExpYear < 2000 {
		return errors.New("expiration year must be a four-digit year")
	}
	if !cvcPattern.MatchString(c.CVC) {
		return errors.New("security code must be 3 or 4 digits")
	}
	return nil
}

// Intent is the processor's view of a payment intent after confirmation.
type Intent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Succeeded reports whether the intent reached its terminal success status.
func (i Intent) Succeeded() bool { return i.Status == "succeeded" }

type confirmError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client confirms payment intents against the processor API. It
// authenticates with the publishable key, which is safe to embed in a
// client and can only drive the confirmation of intents created server-side.
type Client struct {
	baseURL        string
	publishableKey string
	httpClient     *http.Client
	logger         *logging.Logger
}

// New creates a processor client. baseURL falls back to DefaultBaseURL when
// empty.
func New(baseURL, publishableKey string, logger *logging.Logger) (*Client, error) {
	if publishableKey == "" {
		return nil, errors.New("processor publishable key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		publishableKey: publishableKey,
		httpClient:     &http.Client{},
		logger:         logger,
	}, nil
}

// ConfirmCardPayment confirms the intent identified by clientSecret with the
// given card. A card decline comes back as ErrPaymentDeclined wrapped with
// the processor's message so the form can show it inline.
func (c *Client) ConfirmCardPayment(ctx context.Context, clientSecret string, card Card) (Intent, error) {
	if err := card.Validate(); err != nil {
		return Intent{}, err
	}

	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return Intent{}, err
	}

	form := url.Values{}
	form.Set("client_secret", clientSecret)
	form.Set("payment_method_data[type]", "card")
	form.Set("payment_method_data[card][number]", strings.ReplaceAll(card.Number, " ", ""))
	form.Set("payment_method_data[card][exp_month]", fmt.Sprintf("%d", card.ExpMonth))
	form.Set("payment_method_data[card][exp_year]", fmt.Sprintf("%d", card.ExpYear))
	form.Set("payment_method_data[card][cvc]", card.CVC)

	endpoint := fmt.Sprintf("%s/v1/payment_intents/%s/confirm", c.baseURL, intentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Intent{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.publishableKey, "")

	c.logger.Debug("confirming payment intent", "intent", intentID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Intent{}, errors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var ce confirmError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&ce); decodeErr == nil && ce.Error.Message != "" {
			c.logger.Warn("payment confirmation declined",
				"intent", intentID, "code", ce.Error.Code)
			return Intent{}, fmt.Errorf("%w: %s", errors.ErrPaymentDeclined, ce.Error.Message)
		}
		return Intent{}, fmt.Errorf("%w: confirmation failed with status %d",
			errors.ErrPaymentDeclined, resp.StatusCode)
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return Intent{}, fmt.Errorf("decoding confirmation response: %w", err)
	}
	if !intent.Succeeded() {
		return Intent{}, fmt.Errorf("%w: intent status is %q", errors.ErrPaymentDeclined, intent.Status)
	}
	return intent, nil
}

// intentIDFromSecret extracts the intent identifier from a client secret of
// the form "pi_<id>_secret_<nonce>".
func intentIDFromSecret(clientSecret string) (string, error) {
	idx := strings.Index(clientSecret, "_secret_")
	if !strings.HasPrefix(clientSecret, "pi_") || idx <= 0 {
		return "", errors.New("malformed client secret")
	}
	return clientSecret[:idx], nil
}

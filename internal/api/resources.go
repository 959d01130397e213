package api

import (
	"context"
	"fmt"
	"io"
)

// Profile fetches the editable user profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.get(ctx, "/api/user/profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile saves the whole profile in one PUT.
func (c *Client) UpdateProfile(ctx context.Context, profile *Profile) error {
	return c.put(ctx, "/api/user/profile", profile, nil)
}

// UploadAvatar uploads a new avatar image as multipart form data.
func (c *Client) UploadAvatar(ctx context.Context, filename string, content io.Reader) error {
	return c.upload(ctx, "/api/user/profile/avatar", "avatar", filename, content, nil)
}

// UserPreferences fetches the display preferences (theme).
func (c *Client) UserPreferences(ctx context.Context) (*Preferences, error) {
	var prefs Preferences
	if err := c.get(ctx, "/api/user/preferences", &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// UpdateUserPreferences persists display preferences server-side.
func (c *Client) UpdateUserPreferences(ctx context.Context, prefs Preferences) error {
	return c.put(ctx, "/api/user/preferences", prefs, nil)
}

// SupportTickets lists the user's support tickets.
func (c *Client) SupportTickets(ctx context.Context) ([]Ticket, error) {
	var tickets []Ticket
	if err := c.get(ctx, "/api/user/support-tickets", &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// JobApplications lists the user's job applications.
func (c *Client) JobApplications(ctx context.Context) ([]JobApplication, error) {
	var applications []JobApplication
	if err := c.get(ctx, "/api/user/job-applications", &applications); err != nil {
		return nil, err
	}
	return applications, nil
}

// Consultations lists the user's consultations.
func (c *Client) Consultations(ctx context.Context) ([]Consultation, error) {
	var consultations []Consultation
	if err := c.get(ctx, "/api/user/consultations", &consultations); err != nil {
		return nil, err
	}
	return consultations, nil
}

// Consultation fetches a single consultation by id.
func (c *Client) Consultation(ctx context.Context, id string) (*Consultation, error) {
	var consultation Consultation
	if err := c.get(ctx, "/api/user/consultations/"+id, &consultation); err != nil {
		return nil, err
	}
	return &consultation, nil
}

// MarkConsultationPaid flags a consultation's payment as complete through the
// admin surface. Used by operators, not by the payment flow itself.
func (c *Client) MarkConsultationPaid(ctx context.Context, id string) error {
	return c.post(ctx, fmt.Sprintf("/api/admin/consultations/%s/payment-complete", id), nil, nil)
}

// Orders lists the user's orders.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var resp ordersResponse
	if err := c.get(ctx, "/api/user/orders", &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// OrderStats fetches the aggregate order counters for the dashboard home.
func (c *Client) OrderStats(ctx context.Context) (*OrderStats, error) {
	var resp orderStatsResponse
	if err := c.get(ctx, "/api/user/orders/stats", &resp); err != nil {
		return nil, err
	}
	return &resp.Stats, nil
}

// Notifications lists the user's notifications.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	if err := c.get(ctx, "/api/user/notifications", &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks one notification as read. Write-then-render:
// callers update local state only after this returns successfully.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.patch(ctx, fmt.Sprintf("/api/user/notifications/%s/read", id), nil, nil)
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.patch(ctx, "/api/user/notifications/read-all", nil, nil)
}

// CreatePaymentIntent asks the backend for a processor payment intent for
// the consultation. The amount is computed server-side (base price plus the
// fixed 10% surcharge); the client only receives the opaque client secret.
func (c *Client) CreatePaymentIntent(ctx context.Context, consultationID string) (*PaymentIntent, error) {
	var intent PaymentIntent
	body := map[string]string{"consultationId": consultationID}
	if err := c.post(ctx, "/api/payments/create-payment-intent", body, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// ConfirmPayment records a processor-confirmed payment with the backend.
// Called only after the processor reports the charge succeeded.
func (c *Client) ConfirmPayment(ctx context.Context, consultationID, paymentIntentID string) error {
	body := map[string]string{
		"consultationId":  consultationID,
		"paymentIntentId": paymentIntentID,
	}
	return c.post(ctx, "/api/payments/confirm-payment", body, nil)
}

package api

import "context"

// Me fetches the current authenticated identity. A 401 here is the normal
// anonymous case, not a broken session; it is a GET and never redirects.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/api/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login posts credentials and returns the signed-in user. The session cookie
// lands in the client's jar.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp loginResponse
	if err := c.post(ctx, "/api/auth/login", Credentials{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	return c.post(ctx, "/api/auth/register", reg, nil)
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/auth/logout", nil, nil)
}

// ChangePassword changes the account password.
func (c *Client) ChangePassword(ctx context.Context, current, newPassword string) error {
	body := map[string]string{
		"currentPassword": current,
		"newPassword":     newPassword,
	}
	return c.put(ctx, "/api/auth/change-password", body, nil)
}

// AuthPreferences fetches the account security preferences, including the
// two-factor enabled flag.
func (c *Client) AuthPreferences(ctx context.Context) (*Preferences, error) {
	var prefs Preferences
	if err := c.get(ctx, "/api/auth/preferences", &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// TwoFactorSetup starts 2FA enrollment, returning the shared secret and the
// scannable enrollment payload.
func (c *Client) TwoFactorSetup(ctx context.Context) (*TwoFactorSetup, error) {
	var setup TwoFactorSetup
	if err := c.post(ctx, "/api/auth/2fa/setup", nil, &setup); err != nil {
		return nil, err
	}
	return &setup, nil
}

// TwoFactorVerify confirms possession of the authenticator by posting the
// 6-digit code. Success yields the one-time backup codes.
func (c *Client) TwoFactorVerify(ctx context.Context, code string) (*TwoFactorVerifyResult, error) {
	var result TwoFactorVerifyResult
	if err := c.post(ctx, "/api/auth/2fa/verify", map[string]string{"token": code}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TwoFactorDisable turns 2FA off, re-authenticating with the current password.
func (c *Client) TwoFactorDisable(ctx context.Context, password string) error {
	return c.post(ctx, "/api/auth/2fa/disable", map[string]string{"password": password}, nil)
}

// Package api is the single configured HTTP client for the backend REST API.
// Every request carries the session cookie; every response runs through one
// failure-classification point that implements the redirect policy:
// mutating calls that fail with 401, 5xx, or no response at all bounce the
// user to a dedicated error route through the injected NavigationGuard,
// while GET failures are always returned to the calling view to display
// inline.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/portside-app/portside/internal/errors"
	"github.com/portside-app/portside/internal/logging"
)

// Client is the configured request client. Construct it once with New and
// share it; it is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	guard      *NavigationGuard
	logger     *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Used by tests and by
// callers that need a custom transport. The cookie jar is preserved if the
// replacement has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc.Jar == nil {
			hc.Jar = c.httpClient.Jar
		}
		c.httpClient = hc
	}
}

// New creates a Client for the given backend base URL. The cookie jar makes
// session credentials propagate automatically after login. No request
// timeout is configured; the only bound on a stuck call is the backend's
// own behavior.
func New(baseURL string, guard *NavigationGuard, logger *logging.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	if guard == nil {
		guard = NewNavigationGuard(nil, nil)
	}
	if logger == nil {
		logger = logging.NopLogger()
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Jar: jar},
		guard:      guard,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Guard returns the injected navigation guard.
func (c *Client) Guard() *NavigationGuard { return c.guard }

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL.String() }

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// do performs a JSON request and decodes the response into out (when out is
// non-nil). All failure classification lives here.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.send(req, out)
}

// send executes the request and applies the response policy.
func (c *Client) send(req *http.Request, out any) error {
	method, path := req.Method, req.URL.Path

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response at all: network failure. Mutating calls bounce to
		// the server-error route; reads degrade in place.
		c.logger.WithRequest(method, path).Warn("request failed", "error", err.Error())
		if method != http.MethodGet {
			c.guard.Trigger(RouteServerError)
		}
		return errors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := errors.NewAPIError(resp.StatusCode, decodeMessage(resp.Body))
		c.logger.WithRequest(method, path).Warn("request rejected",
			"status", resp.StatusCode, "kind", apiErr.Kind.String())

		if method != http.MethodGet {
			switch {
			case resp.StatusCode == http.StatusUnauthorized:
				c.guard.Trigger(RouteSessionExpired)
			case resp.StatusCode >= 500:
				c.guard.Trigger(RouteServerError)
			}
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// upload performs a multipart POST with a single file field.
func (c *Client) upload(ctx context.Context, path, field, filename string, content io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("reading upload content: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(path), &buf)
	if err != nil {
		return fmt.Errorf("building POST %s: %w", path, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.send(req, out)
}

func (c *Client) resolve(path string) string {
	ref := &url.URL{Path: path}
	if !strings.HasPrefix(path, "/") {
		ref.Path = "/" + path
	}
	return c.baseURL.ResolveReference(ref).String()
}

// decodeMessage pulls the backend's {"message": "..."} out of an error body.
// Bodies that are not in that shape yield an empty message.
func decodeMessage(body io.Reader) string {
	var payload messageResponse
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}

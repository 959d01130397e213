// Package errors provides centralized error definitions and error handling
// utilities for the Portside codebase. It defines the typed APIError returned
// by every backend call, sentinel errors for common conditions, and the
// classification helpers the redirect policy and the views key off.
//
// # Error Classification
//
// The HTTP layer reduces every failure to one of four kinds:
//   - KindAuth: 401 responses (session expired or not authenticated)
//   - KindServer: 5xx responses
//   - KindNetwork: transport failures with no response at all
//   - KindValidation: any other 4xx (password mismatch, declined payment, ...)
//
// Mutating calls that fail with KindAuth, KindServer or KindNetwork bounce
// the user to a dedicated error route; KindValidation and all read failures
// are recovered locally and shown inline.
//
// Checking errors:
//
//	if errors.IsAuthError(err) { ... }
//
//	var apiErr *errors.APIError
//	if errors.As(err, &apiErr) { msg := apiErr.Message }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors for session and wizard state handling.
var (
	// ErrNotAuthenticated indicates that no user is currently signed in.
	ErrNotAuthenticated = New("not authenticated")
	// ErrSessionExpired indicates that the backend rejected the session cookie.
	ErrSessionExpired = New("session expired")
	// ErrInvalidTransition indicates a wizard operation that is not legal
	// from the current step.
	ErrInvalidTransition = New("invalid wizard transition")
	// ErrManualCopyRequired indicates that every clipboard backend failed and
	// the UI must fall back to a manual copy panel.
	ErrManualCopyRequired = New("manual copy required")
	// ErrPaymentDeclined indicates that the payment processor refused the card.
	ErrPaymentDeclined = New("payment declined")
)

// Kind classifies an API failure for the redirect policy.
type Kind int

const (
	// KindUnknown is the zero value; it should not normally be observed.
	KindUnknown Kind = iota
	// KindAuth is a 401 response.
	KindAuth
	// KindValidation is a non-401 4xx response.
	KindValidation
	// KindServer is a 5xx response.
	KindServer
	// KindNetwork is a transport failure with no HTTP response.
	KindNetwork
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// APIError is the error type returned by every backend call that fails.
// StatusCode is zero for network failures. Message carries the backend's
// "message" field when the error body was decodable, so forms can surface
// the server's own wording inline.
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
	case e.StatusCode != 0:
		return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("api: %v", e.Err)
	default:
		return "api: request failed"
	}
}

// Unwrap returns the underlying error, if any.
func (e *APIError) Unwrap() error { return e.Err }

// Is reports whether this error matches the target error. KindAuth errors
// match ErrSessionExpired so callers can use errors.Is without type asserting.
func (e *APIError) Is(target error) bool {
	if target == ErrSessionExpired && e.Kind == KindAuth {
		return true
	}
	return false
}

// UserMessage returns text safe to show in an inline alert. It prefers the
// backend-provided message and falls back to a generic description.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindAuth:
		return "Your session has expired. Please sign in again."
	case KindServer:
		return "The server encountered an error. Please try again later."
	case KindNetwork:
		return "Could not reach the server. Check your connection."
	default:
		return "The request could not be completed."
	}
}

// NewAPIError builds an APIError from an HTTP status code, classifying it
// into the kind the redirect policy uses.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		Kind:       classifyStatus(statusCode),
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewNetworkError wraps a transport failure (no response received).
func NewNetworkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Err: err}
}

func classifyStatus(statusCode int) Kind {
	switch {
	case statusCode == 401:
		return KindAuth
	case statusCode >= 500:
		return KindServer
	case statusCode >= 400:
		return KindValidation
	default:
		return KindUnknown
	}
}

// IsAuthError reports whether err is a 401 API failure.
func IsAuthError(err error) bool {
	return kindOf(err) == KindAuth
}

// IsServerError reports whether err is a 5xx API failure.
func IsServerError(err error) bool {
	return kindOf(err) == KindServer
}

// IsNetworkError reports whether err is a transport failure with no response.
func IsNetworkError(err error) bool {
	return kindOf(err) == KindNetwork
}

// IsValidation reports whether err is a locally recoverable 4xx failure.
func IsValidation(err error) bool {
	return kindOf(err) == KindValidation
}

func kindOf(err error) Kind {
	var apiErr *APIError
	if As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

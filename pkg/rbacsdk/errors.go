package rbacsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ============================================================================
// Error Taxonomy
// ============================================================================

// Sentinel errors for the terminal outcomes of a gateway call. Every error
// returned by the SDK wraps exactly one of these (or none, for local
// failures such as marshaling), so callers can branch with errors.Is.
var (
	// ErrUnauthorized is returned on a 401 response. The session guard has
	// already cleared local credentials by the time the caller sees it.
	ErrUnauthorized = errors.New("rbacsdk: unauthorized")

	// ErrForbidden is returned on a 403 response. The session is still valid;
	// the identity simply lacks the required grant.
	ErrForbidden = errors.New("rbacsdk: forbidden")

	// ErrNotFound is returned on a 404 response.
	ErrNotFound = errors.New("rbacsdk: not found")

	// ErrServer is returned on any 5xx response.
	ErrServer = errors.New("rbacsdk: server error")

	// ErrUnreachable is returned when no response was received at all
	// (connection refused, DNS failure, reset mid-flight).
	ErrUnreachable = errors.New("rbacsdk: service unreachable")

	// ErrTimeout is returned when the request exceeded the client timeout.
	ErrTimeout = errors.New("rbacsdk: request timed out")

	// ErrNoCredentials is returned by authenticated operations when the
	// credential store is empty (never logged in, or session invalidated).
	ErrNoCredentials = errors.New("rbacsdk: no credentials")
)

// APIError is a classified non-2xx response from the authorization service.
// It wraps the matching sentinel (if any) so errors.Is works, and retains
// the raw status and body for callers that need the server's exact words.
type APIError struct {
	// StatusCode is the HTTP status the server answered with.
	StatusCode int

	// Code is the machine-readable error code from the response envelope,
	// empty when the body was not a recognized error shape.
	Code string

	// Message is the human-readable description from the response envelope,
	// or the raw body when no envelope was present.
	Message string

	sentinel error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("rbacsdk: %s (%d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("rbacsdk: api error %d: %s", e.StatusCode, e.Message)
}

// Unwrap exposes the sentinel for errors.Is. Returns nil for statuses that
// have no dedicated sentinel (the generic ApiError bucket).
func (e *APIError) Unwrap() error { return e.sentinel }

// ============================================================================
// Classification
// ============================================================================

// classifyStatus maps a non-2xx response to a typed *APIError. The mapping
// is a pass-through annotation: the gateway never retries, and the body is
// preserved for the caller.
func classifyStatus(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}

	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		apiErr.Code = envelope.Error
		apiErr.Message = envelope.Message
	}

	switch {
	case statusCode == http.StatusUnauthorized:
		apiErr.sentinel = ErrUnauthorized
	case statusCode == http.StatusForbidden:
		apiErr.sentinel = ErrForbidden
	case statusCode == http.StatusNotFound:
		apiErr.sentinel = ErrNotFound
	case statusCode >= 500:
		apiErr.sentinel = ErrServer
	}

	return apiErr
}

// classifyTransport maps a failed round trip (no response received) to the
// timeout or unreachable sentinel.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}

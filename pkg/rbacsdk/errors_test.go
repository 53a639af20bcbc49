package rbacsdk

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"unauthorized", 401, ErrUnauthorized},
		{"forbidden", 403, ErrForbidden},
		{"not found", 404, ErrNotFound},
		{"internal server error", 500, ErrServer},
		{"bad gateway", 502, ErrServer},
		{"teapot has no sentinel", 418, nil},
		{"conflict has no sentinel", 409, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			apiErr := classifyStatus(tt.status, []byte(`{"error":"some_code","message":"nope"}`))
			require.Equal(t, tt.status, apiErr.StatusCode)
			require.Equal(t, "some_code", apiErr.Code)
			require.Equal(t, "nope", apiErr.Message)

			if tt.sentinel != nil {
				require.ErrorIs(t, apiErr, tt.sentinel)
			} else {
				require.Nil(t, apiErr.Unwrap())
			}
		})
	}
}

func TestClassifyStatusNonEnvelopeBody(t *testing.T) {
	t.Parallel()

	apiErr := classifyStatus(502, []byte("upstream exploded"))
	require.ErrorIs(t, apiErr, ErrServer)
	require.Empty(t, apiErr.Code)
	require.Equal(t, "upstream exploded", apiErr.Message)
	require.Contains(t, apiErr.Error(), "502")
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyTransport(t *testing.T) {
	t.Parallel()

	t.Run("deadline exceeded is a timeout", func(t *testing.T) {
		err := classifyTransport(fmt.Errorf("request: %w", context.DeadlineExceeded))
		require.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("net timeout is a timeout", func(t *testing.T) {
		wrapped := &url.Error{Op: "Get", URL: "http://example.com", Err: timeoutErr{}}
		err := classifyTransport(wrapped)
		require.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("connection refused is unreachable", func(t *testing.T) {
		wrapped := &url.Error{Op: "Get", URL: "http://example.com", Err: errors.New("connection refused")}
		err := classifyTransport(wrapped)
		require.ErrorIs(t, err, ErrUnreachable)
	})
}

package rbacsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aussiebroadwan/gatekeep/pkg/idx"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
)

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.baseURL + path
}

// do performs one gateway round trip. A bearer credential is attached when
// authenticated is set and the store holds a token; the token is read at
// send time, never cached across calls, so a request issued after the
// session guard cleared the store goes out unauthenticated rather than
// replaying a dead token. Transport failures are classified before return.
func (c *SDKClient) do(
	ctx context.Context,
	method, path string,
	body io.Reader,
	authenticated bool,
) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, classifyTransport(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", idx.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		if token, ok := c.creds.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		classified := classifyTransport(err)
		slogx.FromContext(ctx).Warn("request failed",
			"method", method,
			"path", path,
			"error", classified,
		)
		return nil, classified
	}

	return resp, nil
}

// doJSON marshals payload (when non-nil) and performs the request.
func (c *SDKClient) doJSON(
	ctx context.Context,
	method, path string,
	payload any,
	authenticated bool,
) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	return c.do(ctx, method, path, body, authenticated)
}

// checkResponse reads the body and classifies non-expected statuses. Every
// 401 on a request that carried a bearer credential is routed through the
// session guard before the error is returned, which gives the exactly-once
// invalidation guarantee a single choke point. A 401 on an unauthenticated
// request (a failed login, or a call issued after the store was cleared)
// says nothing about the live session and leaves the guard alone.
func (c *SDKClient) checkResponse(resp *http.Response, expectedStatus int) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == expectedStatus {
		return body, nil
	}

	apiErr := classifyStatus(resp.StatusCode, body)
	if resp.StatusCode == http.StatusUnauthorized && resp.Request.Header.Get("Authorization") != "" {
		c.guard.Invalidate()
	}

	slogx.FromContext(resp.Request.Context()).Warn("request failed",
		"status", resp.StatusCode,
		"path", resp.Request.URL.Path,
		"code", apiErr.Code,
	)

	return nil, apiErr
}

// decodeJSON validates the status and decodes the body into target.
func (c *SDKClient) decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	body, err := c.checkResponse(resp, expectedStatus)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// discardBody validates the status and drops the payload. Used for
// mutations where the server's body carries nothing the client models.
func (c *SDKClient) discardBody(resp *http.Response, expectedStatus int) error {
	_, err := c.checkResponse(resp, expectedStatus)
	return err
}

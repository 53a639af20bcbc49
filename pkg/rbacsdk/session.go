package rbacsdk

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// Session is the authenticated surface of the SDK. It carries no token of
// its own: every call reads the credential store at send time, so a session
// observes guard invalidations that happen while one of its other calls is
// suspended in network I/O.
//
// Sessions are safe for concurrent use and cheap; they exist to scope the
// authenticated operations and the relationship caches.
type Session struct {
	client *SDKClient

	mu    sync.Mutex
	edges map[Relation]*EdgeSync
}

func newSession(client *SDKClient) *Session {
	return &Session{
		client: client,
		edges:  make(map[Relation]*EdgeSync),
	}
}

// Login authenticates with the service using the password flow. On success
// the returned token and user snapshot are installed into the credential
// store and the session guard is re-armed, in that order, before the
// session is handed back; on failure any prior credential is left intact.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", LoginRequest{
		Username: username,
		Password: password,
	}, false)
	if err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := c.decodeJSON(resp, &loginResp, http.StatusOK); err != nil {
		return nil, err
	}

	if err := c.creds.Set(loginResp.Token, loginResp.User); err != nil {
		return nil, fmt.Errorf("failed to store credentials: %w", err)
	}
	c.guard.Reset()

	c.log.Debug("login succeeded", "username", loginResp.User.Username)
	return newSession(c), nil
}

// Resume returns a session backed by credentials already present in the
// store, typically persisted by an earlier process. It fails with
// ErrNoCredentials when the store is empty; it does not verify the token
// with the remote authority.
func (c *SDKClient) Resume() (*Session, error) {
	if !c.creds.IsAuthenticated() {
		return nil, ErrNoCredentials
	}
	c.guard.Reset()
	return newSession(c), nil
}

// Logout invalidates the remote session on a best-effort basis and then
// clears the local credential store unconditionally. A network failure or
// error status from the server does not prevent the local logout; the
// remote outcome is reported in the returned error for callers that care.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.client.do(ctx, http.MethodPost, "/api/auth/logout", nil, true)
	if err == nil {
		err = s.client.discardBody(resp, http.StatusOK)
	}

	if clearErr := s.client.creds.Clear(); clearErr != nil {
		s.client.log.Warn("logout: failed to clear local credentials", "error", clearErr)
		if err == nil {
			err = clearErr
		}
	}

	return err
}

// UIConfig fetches the server-declared UI configuration for the current
// identity. Pure pass-through read; the client interprets nothing.
func (s *Session) UIConfig(ctx context.Context) (*UIConfig, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/api/auth/ui-config", nil, true)
	if err != nil {
		return nil, err
	}

	var cfg UIConfig
	if err := s.client.decodeJSON(resp, &cfg, http.StatusOK); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// User returns the locally held user snapshot from the credential store.
func (s *Session) User() (User, bool) {
	return s.client.creds.User()
}

package rbacsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// User management operations. Each is a single gateway call with a typed
// request/response shape; the remote authority owns all mutation semantics.
// Delete and status changes are soft operations from this client's point of
// view (the server flips state, physical removal is its business).

// ListUsers retrieves all user accounts.
func (s *Session) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/api/auth/users", nil, true)
	if err != nil {
		return nil, err
	}

	var listResp ListUsersResponse
	if err := s.client.decodeJSON(resp, &listResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &listResp, nil
}

// CreateUser creates a new account and returns the server's view of it.
func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/api/auth/users", req, true)
	if err != nil {
		return nil, err
	}

	var user User
	if err := s.client.decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateUser applies the non-zero fields of req to the given account.
func (s *Session) UpdateUser(ctx context.Context, userID int64, req UpdateUserRequest) (*User, error) {
	path := fmt.Sprintf("/api/auth/users/%d", userID)
	resp, err := s.client.doJSON(ctx, http.MethodPut, path, req, true)
	if err != nil {
		return nil, err
	}

	var user User
	if err := s.client.decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// DeleteUser soft-deletes an account. The server decides what deletion
// actually means; the client only reports the outcome.
func (s *Session) DeleteUser(ctx context.Context, userID int64) error {
	path := fmt.Sprintf("/api/auth/users/%d", userID)
	resp, err := s.client.do(ctx, http.MethodDelete, path, nil, true)
	if err != nil {
		return err
	}

	return s.client.discardBody(resp, http.StatusNoContent)
}

// SetUserStatus toggles the enabled flag on an account.
func (s *Session) SetUserStatus(ctx context.Context, userID int64, enabled bool) error {
	path := fmt.Sprintf("/api/auth/users/%d/status?enabled=%s", userID, strconv.FormatBool(enabled))
	resp, err := s.client.do(ctx, http.MethodPut, path, nil, true)
	if err != nil {
		return err
	}

	return s.client.discardBody(resp, http.StatusOK)
}

// SetUserRoles replaces the full role assignment set for an account.
func (s *Session) SetUserRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	path := fmt.Sprintf("/api/auth/users/%d/roles", userID)
	resp, err := s.client.doJSON(ctx, http.MethodPut, path, linkRequest{IDs: roleIDs}, true)
	if err != nil {
		return err
	}

	return s.client.discardBody(resp, http.StatusOK)
}

// InvalidateUserTokens forces re-authentication for the given account by
// revoking every token the server has issued to it.
func (s *Session) InvalidateUserTokens(ctx context.Context, userID int64) error {
	path := fmt.Sprintf("/api/auth/users/%d/invalidate-tokens", userID)
	resp, err := s.client.do(ctx, http.MethodPost, path, nil, true)
	if err != nil {
		return err
	}

	return s.client.discardBody(resp, http.StatusOK)
}

// ListUsersByRole retrieves the accounts holding the named role.
func (s *Session) ListUsersByRole(ctx context.Context, role string) (*ListUsersResponse, error) {
	path := "/api/auth/users/role/" + url.PathEscape(role)
	resp, err := s.client.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}

	var listResp ListUsersResponse
	if err := s.client.decodeJSON(resp, &listResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &listResp, nil
}

package rbacsdk

import (
	"context"
	"net/http"
)

// ListRoles retrieves all roles visible to the current identity.
func (s *Session) ListRoles(ctx context.Context) (*ListRolesResponse, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/api/auth/roles", nil, true)
	if err != nil {
		return nil, err
	}

	var rolesResp ListRolesResponse
	if err := s.client.decodeJSON(resp, &rolesResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &rolesResp, nil
}

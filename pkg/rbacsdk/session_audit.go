package rbacsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Audit retrieval. The audit log is append-only and owned entirely by the
// server; this client reads and exports, never writes.

// ListAuditLogs retrieves a filtered page of audit records.
func (s *Session) ListAuditLogs(ctx context.Context, query AuditQuery) (*ListAuditLogsResponse, error) {
	params := url.Values{}
	if query.Username != "" {
		params.Set("username", query.Username)
	}
	if query.Action != "" {
		params.Set("action", query.Action)
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(query.PerPage))
	}

	path := "/api/auth/admin/audit-logs"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := s.client.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}

	var listResp ListAuditLogsResponse
	if err := s.client.decodeJSON(resp, &listResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &listResp, nil
}

// ExportAuditLogs downloads the full audit trail in the server's export
// format (typically CSV). The bytes are returned untouched.
func (s *Session) ExportAuditLogs(ctx context.Context) ([]byte, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/api/auth/admin/audit-logs/export", nil, true)
	if err != nil {
		return nil, err
	}

	return s.client.checkResponse(resp, http.StatusOK)
}

package rbacsdk

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// errorResponse is the error envelope returned by the authorization service.
// Client code should use the APIError type from errors.go instead.
type errorResponse struct {
	// Error is the machine-readable error code (e.g., "invalid_credentials")
	Error string `json:"error"`

	// Message is a human-readable description of the error
	Message string `json:"message"`
}

// ============================================================================
// Authentication Types
// ============================================================================

// LoginRequest is the credential payload for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful authentication. The token is an
// opaque bearer credential; the user snapshot reflects the identity it was
// issued to.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ============================================================================
// User Types
// ============================================================================

// User is the remote authority's view of an account. Identifiers are opaque
// integers assigned by the server; the client never generates them.
type User struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Enabled  bool    `json:"enabled"`
	Roles    []int64 `json:"roles,omitempty"`
}

// CreateUserRequest is the payload for POST /api/auth/users.
type CreateUserRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    string  `json:"email,omitempty"`
	FullName string  `json:"full_name,omitempty"`
	Roles    []int64 `json:"roles,omitempty"`
}

// UpdateUserRequest is the payload for PUT /api/auth/users/{id}.
// Zero-valued fields are omitted so the server only touches what was sent.
type UpdateUserRequest struct {
	Email    string  `json:"email,omitempty"`
	FullName string  `json:"full_name,omitempty"`
	Password string  `json:"password,omitempty"`
	Roles    []int64 `json:"roles,omitempty"`
}

// ListUsersResponse contains the user collection for GET /api/auth/users.
type ListUsersResponse struct {
	Users []User `json:"users"`
}

// ============================================================================
// Reference Entity Types
// ============================================================================

// Role groups policies under a name users can be assigned to.
type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Policy is a named grant that bundles capabilities and endpoints.
type Policy struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Capability is an atomic permission a policy can carry.
type Capability struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Endpoint describes a protected HTTP surface on the backend.
type Endpoint struct {
	ID          int64  `json:"id"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

// UIPage is a navigable page declared by the server for menu construction.
type UIPage struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Path  string `json:"path"`
	Icon  string `json:"icon,omitempty"`
	Order int    `json:"order,omitempty"`
}

// PageAction is an in-page operation (button, bulk action) gated by the server.
type PageAction struct {
	ID     int64  `json:"id"`
	PageID int64  `json:"page_id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
}

// ListRolesResponse contains the role collection for GET /api/auth/roles.
type ListRolesResponse struct {
	Roles []Role `json:"roles"`
}

// ============================================================================
// UI Configuration Types
// ============================================================================

// UIConfig is the server-declared interface configuration for the current
// identity. The client treats it as an opaque pass-through read.
type UIConfig struct {
	Pages   []UIPage     `json:"pages"`
	Actions []PageAction `json:"actions,omitempty"`
}

// ============================================================================
// Relationship Types
// ============================================================================

// linkRequest carries the full batch of related ids to attach to an owner.
type linkRequest struct {
	IDs []int64 `json:"ids"`
}

// edgeListResponse is the confirmed edge set for one owner.
type edgeListResponse struct {
	IDs []int64 `json:"ids"`
}

// ============================================================================
// Audit Types
// ============================================================================

// AuditLog is an append-only record of an administrative action. The client
// only ever reads these.
type AuditLog struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Action    string `json:"action"`
	Resource  string `json:"resource"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"` // RFC3339 timestamp
}

// ListAuditLogsResponse contains a page of audit records.
type ListAuditLogsResponse struct {
	Logs  []AuditLog `json:"logs"`
	Total int64      `json:"total"`
}

// AuditQuery narrows an audit listing. Zero values mean "no filter".
type AuditQuery struct {
	Username string
	Action   string
	Page     int
	PerPage  int
}

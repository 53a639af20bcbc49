/*
Package rbacsdk provides the client access layer for the gatekeep RBAC
authorization service: authenticated requests, session credential lifecycle,
and a locally cached view of the permission graph's many-to-many edges.

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: owns the gateway (HTTP transport, error classification, rate
    pacing), the credential store and the session guard, and performs the
    unauthenticated login call
  - Session: the authenticated surface: user management, roles, reference
    entities, audit retrieval and relationship synchronization

Create an SDKClient for the service, then log in to obtain a Session:

	client := rbacsdk.NewSDKClient("https://auth.example.com")

	session, err := client.Login(ctx, "admin", "password")
	if err != nil {
		return err
	}

	users, err := session.ListUsers(ctx)

A Session never caches the bearer token: every call reads the credential
store at send time. This matters because a 401 on any in-flight request
clears the store (see Session Guard below), and calls issued afterwards must
observe that, not a stale token captured earlier.

# Credential Store

CredentialStore holds the single live credential (token plus the user
snapshot it was issued to). Set replaces both atomically, Clear is
idempotent, and IsAuthenticated answers from local state only. The default
is the in-memory implementation; pass WithCredentials to back a client with
the durable SQLite store from internal/credstore so a CLI session survives
process restarts.

# Session Guard

The first 401 on a bearer-carrying request trips the session guard: the
credential store is cleared, then the hook registered with
WithOnSessionExpired fires exactly once per failure burst, no matter how
many concurrent requests come back 401. The guard re-arms only on a fresh
successful Login. The hook is the host application's re-login entry point;
a CLI prints instructions, an embedding UI navigates to its login view.

# Error Handling

Every terminal outcome wraps one of the package sentinels, so callers
branch with errors.Is:

	_, err := session.ListUsers(ctx)
	switch {
	case errors.Is(err, rbacsdk.ErrUnauthorized):
		// session invalidated, credentials already cleared
	case errors.Is(err, rbacsdk.ErrForbidden):
		// identity lacks the grant; session still valid
	case errors.Is(err, rbacsdk.ErrTimeout), errors.Is(err, rbacsdk.ErrUnreachable):
		// transport trouble, nothing was classified
	}

Non-2xx responses surface as *APIError carrying the raw status and the
server's error envelope. The gateway never retries; retry and backoff
policy belongs to the caller.

# Relationship Synchronization

The permission graph's edge tables (role↔policy, policy↔capability,
policy↔endpoint) are managed through EdgeSync, obtained per relation from
the session:

	rp := session.RolePolicies()

	if err := rp.Link(ctx, roleID, []int64{5, 7}); err != nil {
		return err
	}

	// The cache for roleID was invalidated by Link; this fetches the
	// server's confirmed set rather than a speculative local merge.
	policies, err := rp.ListEdgesFor(ctx, roleID)

Mutations invalidate, reads refetch: the cache never holds a set the server
did not confirm. Unlinking an edge that no longer exists is treated as
success, because concurrent operators race and the contract only promises
the edge is gone afterward.

# Thread Safety

SDKClient, Session, EdgeSync and both credential store implementations are
safe for concurrent use. Multiple goroutines can share one Session; the
exactly-once guard guarantee holds across them.
*/
package rbacsdk

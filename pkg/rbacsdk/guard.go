package rbacsdk

import (
	"log/slog"
	"sync"
)

// SessionGuard invalidates the local session when the remote authority
// declares it dead. It is a two-state machine: active, where 401 responses
// trip it, and invalidated, where further 401s are absorbed silently. The
// transition back to active happens only through a fresh successful login.
//
// The guarantee callers rely on is exactly-once invalidation per failure
// burst: when several in-flight requests all come back 401, the credential
// store is cleared and the expiry hook runs for the first classified
// response only.
type SessionGuard struct {
	mu          sync.Mutex
	invalidated bool

	creds     CredentialStore
	onExpired func()
	log       *slog.Logger
}

// newSessionGuard wires a guard to the credential store it protects.
// onExpired may be nil; it is the caller's re-login entry point (a CLI
// prints instructions, an embedding UI navigates to its login view).
func newSessionGuard(creds CredentialStore, onExpired func(), log *slog.Logger) *SessionGuard {
	return &SessionGuard{
		creds:     creds,
		onExpired: onExpired,
		log:       log,
	}
}

// Invalidate handles one observed 401. The first call per burst clears the
// credential store and then fires the expiry hook, in that order; repeat
// calls are no-ops until Reset.
func (g *SessionGuard) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.invalidated {
		return
	}
	g.invalidated = true

	if err := g.creds.Clear(); err != nil {
		g.log.Warn("session guard: failed to clear credentials", "error", err)
	}
	g.log.Warn("session invalidated by remote authority")

	if g.onExpired != nil {
		g.onExpired()
	}
}

// Reset re-arms the guard after a successful login.
func (g *SessionGuard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.invalidated = false
}

// Active reports whether the guard has not tripped since the last reset.
func (g *SessionGuard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.invalidated
}

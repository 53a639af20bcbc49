package rbacsdk

import "sync"

// CredentialStore holds the live session credential: the bearer token and
// the user snapshot it was issued to. Exactly one credential is live at a
// time; Set replaces the previous one atomically, so a reader issued after
// Set returns sees both values or neither, never a torn pair.
//
// Implementations must be safe for concurrent use. The SDK ships
// MemoryCredentials for in-process use; the credstore package provides a
// durable SQLite-backed implementation for CLI sessions that survive
// process restarts.
type CredentialStore interface {
	// Set installs a new credential, replacing any previous one.
	Set(token string, user User) error

	// Token returns the live bearer token, or false when none is held.
	Token() (string, bool)

	// User returns the user snapshot the token was issued to.
	User() (User, bool)

	// Clear discards the credential. Clearing an empty store is a no-op.
	Clear() error

	// IsAuthenticated reports whether a token is present. It says nothing
	// about whether the remote authority still honors it.
	IsAuthenticated() bool
}

// MemoryCredentials is an in-process CredentialStore. It is the default for
// new SDK clients and the usual choice in tests.
type MemoryCredentials struct {
	mu    sync.RWMutex
	token string
	user  User
	held  bool
}

// NewMemoryCredentials returns an empty in-memory credential store.
func NewMemoryCredentials() *MemoryCredentials {
	return &MemoryCredentials{}
}

// Set installs the token and user snapshot under one lock acquisition.
func (m *MemoryCredentials) Set(token string, user User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = user
	m.held = true
	return nil
}

// Token returns the live bearer token, or false when the store is empty.
func (m *MemoryCredentials) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.held {
		return "", false
	}
	return m.token, true
}

// User returns the stored user snapshot, or false when the store is empty.
func (m *MemoryCredentials) User() (User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.held {
		return User{}, false
	}
	return m.user, true
}

// Clear empties the store. Safe to call repeatedly.
func (m *MemoryCredentials) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = User{}
	m.held = false
	return nil
}

// IsAuthenticated reports whether a token is currently held.
func (m *MemoryCredentials) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.held
}

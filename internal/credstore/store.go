// Package credstore persists the live session credential in a local SQLite
// database so a CLI session survives process restarts. It implements
// rbacsdk.CredentialStore.
//
// Exactly two fixed, versionless keys are stored: the bearer token and the
// serialized user profile. The token value is sealed at rest (see
// pkg/cryptox); the database file alone does not contain a usable
// credential.
package credstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeep/pkg/rbacsdk"
	_ "modernc.org/sqlite"
)

const (
	keyToken = "session.token"
	keyUser  = "session.user"
)

// Store is a durable credential store. Reads are served from memory; Set
// and Clear write through to SQLite inside one transaction, so a process
// that crashes mid-write never leaves a torn credential on disk.
type Store struct {
	db *sql.DB

	mu    sync.RWMutex
	token string
	user  rbacsdk.User
	held  bool
}

// Open opens (creating if needed) the credential database at path, applies
// any pending migrations, and loads the stored credential into memory.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential database: %w", err)
	}

	s := &Store{db: db}

	if err := s.applyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate credential database: %w", err)
	}

	if err := s.load(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// load populates the in-memory view from disk. A missing or undecryptable
// token counts as "not logged in" rather than an error; a credential
// sealed under a lost master key is unrecoverable anyway and the remedy is
// the same, logging in again.
func (s *Store) load(ctx context.Context) error {
	sealed, tokenOK, err := s.get(ctx, keyToken)
	if err != nil {
		return err
	}
	rawUser, userOK, err := s.get(ctx, keyUser)
	if err != nil {
		return err
	}

	if !tokenOK || !userOK {
		return nil
	}

	token, err := cryptox.Open(sealed)
	if err != nil {
		return nil
	}

	var user rbacsdk.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return nil
	}

	s.mu.Lock()
	s.token = string(token)
	s.user = user
	s.held = true
	s.mu.Unlock()
	return nil
}

func (s *Store) get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read credential %q: %w", key, err)
	}
	return value, true, nil
}

// Set persists the token (sealed) and user profile in one transaction and
// then updates the in-memory view.
func (s *Store) Set(token string, user rbacsdk.User) error {
	sealed, err := cryptox.Seal([]byte(token))
	if err != nil {
		return fmt.Errorf("failed to seal token: %w", err)
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	const upsert = `
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := tx.ExecContext(ctx, upsert, keyToken, sealed); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, keyUser, rawUser); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.held = true
	s.mu.Unlock()
	return nil
}

// Token returns the live bearer token, or false when none is held.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.held {
		return "", false
	}
	return s.token, true
}

// User returns the stored user snapshot, or false when none is held.
func (s *Store) User() (rbacsdk.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.held {
		return rbacsdk.User{}, false
	}
	return s.user, true
}

// Clear removes the credential from disk and memory. Idempotent.
func (s *Store) Clear() error {
	if _, err := s.db.ExecContext(context.Background(),
		`DELETE FROM credentials WHERE key IN (?, ?)`, keyToken, keyUser,
	); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	s.mu.Lock()
	s.token = ""
	s.user = rbacsdk.User{}
	s.held = false
	s.mu.Unlock()
	return nil
}

// IsAuthenticated reports whether a token is currently held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.held
}

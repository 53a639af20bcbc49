package rbacsdk

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeep/pkg/idx"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testToken = "token-T"

// newFakeAuthServer stands in for the remote authority: a login endpoint, a
// user collection and a logout endpoint, with optional fault injection.
func newFakeAuthServer(t *testing.T) (*httptest.Server, *fakeAuthState) {
	t.Helper()

	state := &fakeAuthState{}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Username != "admin" || req.Password != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(errorResponse{Error: "invalid_credentials", Message: "bad login"})
			return
		}

		_ = json.NewEncoder(w).Encode(LoginResponse{
			Token: testToken,
			User:  User{ID: 1, Username: "admin", Enabled: true},
		})
	})

	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		state.logoutCalls.Add(1)
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("POST /api/auth/users", func(w http.ResponseWriter, r *http.Request) {
		state.lastAuthHeader.Store(r.Header.Get("Authorization"))
		state.lastRequestID.Store(r.Header.Get("X-Request-Id"))

		if state.reject401.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(errorResponse{Error: "token_revoked", Message: "session dead"})
			return
		}

		var req CreateUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(User{ID: 99, Username: req.Username, Enabled: true})
	})

	mux.HandleFunc("GET /api/auth/ui-config", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(UIConfig{
			Pages: []UIPage{{ID: 1, Name: "Users", Path: "/users"}},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, state
}

type fakeAuthState struct {
	reject401      atomic.Bool
	logoutCalls    atomic.Int32
	lastAuthHeader atomic.Value
	lastRequestID  atomic.Value
}

func TestLoginInstallsCredentials(t *testing.T) {
	t.Parallel()

	server, _ := newFakeAuthServer(t)
	client := NewSDKClient(server.URL)

	session, err := client.Login(context.Background(), "admin", "correct")
	require.NoError(t, err)
	require.NotNil(t, session)

	// Login followed immediately by Token returns the fresh token.
	token, ok := client.Credentials().Token()
	require.True(t, ok)
	require.Equal(t, testToken, token)

	user, ok := session.User()
	require.True(t, ok)
	require.Equal(t, "admin", user.Username)
	require.True(t, client.IsAuthenticated())
}

func TestFailedLoginLeavesPriorCredentialIntact(t *testing.T) {
	t.Parallel()

	server, _ := newFakeAuthServer(t)
	client := NewSDKClient(server.URL)

	require.NoError(t, client.Credentials().Set("prior-token", User{ID: 5}))

	_, err := client.Login(context.Background(), "admin", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "invalid_credentials", apiErr.Code)

	// The 401 came from an unauthenticated login attempt; the guard does
	// not trip and the prior credential survives.
	token, ok := client.Credentials().Token()
	require.True(t, ok)
	require.Equal(t, "prior-token", token)
	require.True(t, client.IsAuthenticated())
}

func TestCreateUserAttachesBearerToken(t *testing.T) {
	t.Parallel()

	server, state := newFakeAuthServer(t)
	client := NewSDKClient(server.URL)

	session, err := client.Login(context.Background(), "admin", "correct")
	require.NoError(t, err)

	user, err := session.CreateUser(context.Background(), CreateUserRequest{Username: "a", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "a", user.Username)
	require.Equal(t, int64(99), user.ID)

	require.Equal(t, "Bearer "+testToken, state.lastAuthHeader.Load())

	// Every gateway call carries a parseable request-correlation id.
	reqID, _ := state.lastRequestID.Load().(string)
	_, err = idx.Parse(reqID)
	require.NoError(t, err)
}

// End-to-end: a 401 after login must leave the credential store empty, the expiry
// hook fired once, subsequent IsAuthenticated false.
func TestUnauthorizedResponseInvalidatesSession(t *testing.T) {
	t.Parallel()

	server, state := newFakeAuthServer(t)

	var expired atomic.Int32
	client := NewSDKClient(server.URL, WithOnSessionExpired(func() { expired.Add(1) }))

	session, err := client.Login(context.Background(), "admin", "correct")
	require.NoError(t, err)
	require.True(t, client.IsAuthenticated())

	state.reject401.Store(true)

	_, err = session.CreateUser(context.Background(), CreateUserRequest{Username: "b", Password: "pw"})
	require.ErrorIs(t, err, ErrUnauthorized)

	require.False(t, client.IsAuthenticated())
	require.Equal(t, int32(1), expired.Load())

	// A second 401 in the same burst must not re-fire the hook.
	_, err = session.CreateUser(context.Background(), CreateUserRequest{Username: "c", Password: "pw"})
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Equal(t, int32(1), expired.Load())

	// A fresh login re-arms the guard.
	state.reject401.Store(false)
	_, err = client.Login(context.Background(), "admin", "correct")
	require.NoError(t, err)
	require.True(t, client.Guard().Active())
}

func TestLogoutClearsStoreEvenWhenRemoteFails(t *testing.T) {
	t.Parallel()

	server, _ := newFakeAuthServer(t)
	client := NewSDKClient(server.URL)

	session, err := client.Login(context.Background(), "admin", "correct")
	require.NoError(t, err)

	// Kill the server so the remote logout cannot succeed.
	server.Close()

	err = session.Logout(context.Background())
	require.ErrorIs(t, err, ErrUnreachable)

	// Local logout is unconditional.
	require.False(t, client.IsAuthenticated())
}

func TestLogoutBestEffortRemote(t *testing.T) {
	t.Parallel()

	server, state := newFakeAuthServer(t)
	client := NewSDKClient(server.URL)

	session, err := client.Login(context.Background(), "admin", "correct")
	require.NoError(t, err)

	require.NoError(t, session.Logout(context.Background()))
	require.Equal(t, int32(1), state.logoutCalls.Load())
	require.False(t, client.IsAuthenticated())
}

func TestResume(t *testing.T) {
	t.Parallel()

	server, _ := newFakeAuthServer(t)

	t.Run("with stored credentials", func(t *testing.T) {
		client := NewSDKClient(server.URL)
		require.NoError(t, client.Credentials().Set("stored", User{ID: 2}))

		session, err := client.Resume()
		require.NoError(t, err)
		require.NotNil(t, session)
	})

	t.Run("empty store", func(t *testing.T) {
		client := NewSDKClient(server.URL)
		_, err := client.Resume()
		require.ErrorIs(t, err, ErrNoCredentials)
	})
}

func TestUIConfigPassThrough(t *testing.T) {
	t.Parallel()

	server, _ := newFakeAuthServer(t)
	client := NewSDKClient(server.URL)

	session, err := client.Login(context.Background(), "admin", "correct")
	require.NoError(t, err)

	cfg, err := session.UIConfig(context.Background())
	require.NoError(t, err)
	require.Len(t, cfg.Pages, 1)
	require.Equal(t, "/users", cfg.Pages[0].Path)
}

func TestUnreachableServer(t *testing.T) {
	t.Parallel()

	// Nothing listens here.
	client := NewSDKClient("http://127.0.0.1:1")

	_, err := client.Login(context.Background(), "admin", "correct")
	require.ErrorIs(t, err, ErrUnreachable)
}

// recordingHandler collects slog records so tests can assert on levels.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) levels() []slog.Level {
	h.mu.Lock()
	defer h.mu.Unlock()
	levels := make([]slog.Level, 0, len(h.records))
	for _, r := range h.records {
		levels = append(levels, r.Level)
	}
	return levels
}

// Request failures surface at warn through the logger carried by the call's
// context, for both classified statuses and transport errors.
func TestRequestFailuresLogAtWarn(t *testing.T) {
	t.Parallel()

	t.Run("status failure", func(t *testing.T) {
		handler := &recordingHandler{}
		ctx := slogx.WithContext(context.Background(), slog.New(handler))

		server := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(server.Close)

		session := edgeTestSession(t, server.URL)
		err := session.DeleteUser(ctx, 999)
		require.ErrorIs(t, err, ErrNotFound)
		require.Equal(t, []slog.Level{slog.LevelWarn}, handler.levels())
	})

	t.Run("transport failure", func(t *testing.T) {
		handler := &recordingHandler{}
		ctx := slogx.WithContext(context.Background(), slog.New(handler))

		client := NewSDKClient("http://127.0.0.1:1")
		_, err := client.Login(ctx, "admin", "correct")
		require.ErrorIs(t, err, ErrUnreachable)
		require.Equal(t, []slog.Level{slog.LevelWarn}, handler.levels())
	})
}

// The optional client-side limiter paces requests without altering their
// semantics; a context that cannot admit the wait classifies like any other
// deadline failure.
func TestRateLimit(t *testing.T) {
	t.Parallel()

	server, _ := newFakeAuthServer(t)

	t.Run("paces requests", func(t *testing.T) {
		t.Parallel()

		// 20 requests per second means 50ms between calls after the burst.
		client := NewSDKClient(server.URL, WithRateLimit(20, 1))

		start := time.Now()
		for range 3 {
			_, err := client.Login(context.Background(), "admin", "correct")
			require.NoError(t, err)
		}
		require.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	})

	t.Run("expired context classifies as timeout", func(t *testing.T) {
		t.Parallel()

		client := NewSDKClient(server.URL, WithRateLimit(1, 1))

		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		_, err := client.Login(ctx, "admin", "correct")
		require.ErrorIs(t, err, ErrTimeout)
	})
}

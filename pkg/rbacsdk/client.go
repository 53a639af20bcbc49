package rbacsdk

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout bounds every gateway call unless overridden with
// WithTimeout or a custom HTTP client.
const DefaultTimeout = 30 * time.Second

// SDKClient is a client for the RBAC authorization service. It provides the
// unauthenticated surface (login) and mints authenticated Sessions. All
// requests flow through one gateway that classifies errors and feeds the
// session guard.
type SDKClient struct {
	baseURL    string
	httpClient *http.Client

	creds   CredentialStore
	guard   *SessionGuard
	limiter *rate.Limiter
	log     *slog.Logger
}

// Option customizes an SDKClient at construction time.
type Option func(*options)

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	creds      CredentialStore
	log        *slog.Logger
	limiter    *rate.Limiter
	onExpired  func()
}

// WithHTTPClient supplies a custom *http.Client. The caller owns its
// timeout configuration; WithTimeout is ignored when this is set.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithCredentials backs the client with the given credential store instead
// of the default in-memory one. Use a credstore.Store for durable CLI
// sessions.
func WithCredentials(s CredentialStore) Option {
	return func(o *options) { o.creds = s }
}

// WithLogger sets the logger for client lifecycle events (login, session
// invalidation). Defaults to slog.Default(). Per-request failure logs use
// the logger carried by the call's context (slogx.WithContext) instead,
// falling back to slog.Default() when the context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRateLimit throttles outbound requests to r per second with the given
// burst. Useful when a batch tool would otherwise hammer the admin API.
// This is client-side pacing only; the SDK still never retries.
func WithRateLimit(r float64, burst int) Option {
	return func(o *options) { o.limiter = rate.NewLimiter(rate.Limit(r), burst) }
}

// WithOnSessionExpired registers the hook the session guard fires once per
// invalidation burst, after local credentials have been cleared. This is
// the re-login entry point of whatever hosts the SDK.
func WithOnSessionExpired(fn func()) Option {
	return func(o *options) { o.onExpired = fn }
}

// NewSDKClient creates a client for the authorization service at baseURL.
func NewSDKClient(baseURL string, opts ...Option) *SDKClient {
	o := &options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(o)
	}

	if o.creds == nil {
		o.creds = NewMemoryCredentials()
	}
	if o.log == nil {
		o.log = slog.Default()
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: o.timeout}
	}

	return &SDKClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: o.httpClient,
		creds:      o.creds,
		guard:      newSessionGuard(o.creds, o.onExpired, o.log),
		limiter:    o.limiter,
		log:        o.log,
	}
}

// Credentials exposes the backing credential store.
func (c *SDKClient) Credentials() CredentialStore { return c.creds }

// Guard exposes the session guard, mainly so embedders can query whether
// the current session has been invalidated.
func (c *SDKClient) Guard() *SessionGuard { return c.guard }

// IsAuthenticated reports whether a token is held locally. It does not
// consult the remote authority.
func (c *SDKClient) IsAuthenticated() bool { return c.creds.IsAuthenticated() }

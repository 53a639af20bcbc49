// Package cli carries the shared wiring for gatectl commands: config,
// logging, the encrypted credential store, and a lazily built SDK client.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/gatekeep/internal/credstore"
	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeep/pkg/rbacsdk"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
	"github.com/pterm/pterm"
)

// App holds the process-wide dependencies a command needs. Commands obtain
// it from the root command and must not build their own stores or clients.
type App struct {
	Config Config
	Log    *slog.Logger

	store  *credstore.Store
	client *rbacsdk.SDKClient
}

// NewApp loads config, opens the credential database and builds the SDK
// client. serverOverride wins over GATEKEEP_SERVER when non-empty.
func NewApp(serverOverride string) (*App, error) {
	cfg := LoadConfig()
	if serverOverride != "" {
		cfg.ServerURL = serverOverride
	}

	log := slogx.New(slogx.Config{
		Service: "gatectl",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	if cfg.MasterKeyPath != "" {
		cryptox.SetMasterKeyPath(cfg.MasterKeyPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.CredentialsFile), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}

	store, err := credstore.Open(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	client := rbacsdk.NewSDKClient(cfg.ServerURL,
		rbacsdk.WithCredentials(store),
		rbacsdk.WithTimeout(cfg.Timeout),
		rbacsdk.WithLogger(log),
		rbacsdk.WithOnSessionExpired(func() {
			pterm.Warning.Println("Session expired. Run `gatectl auth login` to sign in again.")
		}),
	)

	return &App{Config: cfg, Log: log, store: store, client: client}, nil
}

// Client returns the SDK client. It works unauthenticated for login.
func (a *App) Client() *rbacsdk.SDKClient { return a.client }

// Session resumes the stored session. Callers get ErrNoCredentials when
// nobody is logged in.
func (a *App) Session() (*rbacsdk.Session, error) {
	return a.client.Resume()
}

func (a *App) Close() error {
	return a.store.Close()
}

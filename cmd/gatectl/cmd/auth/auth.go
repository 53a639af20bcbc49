package auth

import (
	"github.com/aussiebroadwan/gatekeep/cmd/gatectl/internal/cli"
	"github.com/spf13/cobra"
)

var app *cli.App

// AuthCmd is the parent command for auth operations
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Commands for signing in and out and inspecting login status.`,
}

// SetApp injects the shared application wiring.
func SetApp(a *cli.App) {
	app = a
}

func init() {
	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(logoutCmd)
	AuthCmd.AddCommand(statusCmd)
}

package auth

import (
	"errors"

	"github.com/aussiebroadwan/gatekeep/pkg/rbacsdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from Gatekeep",
	Long: `Revokes the stored token on the server and removes it from the credential
database. Local credentials are cleared even when the server is unreachable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := app.Session()
		if err != nil {
			if errors.Is(err, rbacsdk.ErrNoCredentials) {
				pterm.Info.Println("Not logged in")
				return nil
			}
			return err
		}

		if err := session.Logout(cmd.Context()); err != nil {
			// Credentials are already gone locally; the revocation just
			// did not reach the server.
			pterm.Warning.Printf("Logged out locally, server revocation failed: %v\n", err)
			return nil
		}

		pterm.Success.Println("Logged out")
		return nil
	},
}

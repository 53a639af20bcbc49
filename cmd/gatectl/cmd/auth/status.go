package auth

import (
	"errors"
	"time"

	"github.com/aussiebroadwan/gatekeep/pkg/rbacsdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := app.Session()
		if err != nil {
			if errors.Is(err, rbacsdk.ErrNoCredentials) {
				pterm.Info.Println("Not logged in")
				return nil
			}
			return err
		}

		user, _ := session.User()

		pterm.DefaultSection.Println("Authentication Status")
		pterm.Info.Printf("Logged in as: %s (%s)\n", user.Username, user.Email)

		token, _ := app.Client().Credentials().Token()
		claims, err := rbacsdk.ParseTokenClaims(token)
		if err != nil {
			pterm.Warning.Printf("Stored token is not inspectable: %v\n", err)
			return nil
		}

		if claims.ExpiresAt.IsZero() {
			pterm.Info.Println("Token has no expiry claim")
		} else {
			pterm.Info.Printf("Token expires at: %s\n", claims.ExpiresAt.Format(time.RFC1123))
			if claims.IsExpired() {
				pterm.Warning.Println("Token has expired. Run `gatectl auth login` to sign in again.")
			}
		}

		return nil
	},
}

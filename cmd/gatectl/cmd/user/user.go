package user

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/gatekeep/cmd/gatectl/internal/cli"
	"github.com/aussiebroadwan/gatekeep/pkg/rbacsdk"
	"github.com/spf13/cobra"
)

var app *cli.App

// UserCmd is the parent command for user management
var UserCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
	Long:  `Commands for listing, creating and modifying Gatekeep user accounts.`,
}

// SetApp injects the shared application wiring.
func SetApp(a *cli.App) {
	app = a
}

func session() (*rbacsdk.Session, error) {
	s, err := app.Session()
	if errors.Is(err, rbacsdk.ErrNoCredentials) {
		return nil, fmt.Errorf("not logged in, run `gatectl auth login` first")
	}
	return s, err
}

func init() {
	UserCmd.AddCommand(listCmd)
	UserCmd.AddCommand(createCmd)
	UserCmd.AddCommand(updateCmd)
	UserCmd.AddCommand(deleteCmd)
	UserCmd.AddCommand(enableCmd)
	UserCmd.AddCommand(disableCmd)
	UserCmd.AddCommand(setRolesCmd)
	UserCmd.AddCommand(revokeTokensCmd)
}

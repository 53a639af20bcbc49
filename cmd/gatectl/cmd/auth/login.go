package auth

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	username string
	password string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with Gatekeep",
	Long: `Signs in with a username and password and stores the issued token in the
encrypted credential database. The password is prompted for when not given
via --password.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if username == "" {
			input, err := pterm.DefaultInteractiveTextInput.Show("Username")
			if err != nil {
				return err
			}
			username = input
		}

		if password == "" {
			input, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")
			if err != nil {
				return err
			}
			password = input
		}

		session, err := app.Client().Login(cmd.Context(), username, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		user, _ := session.User()
		pterm.Success.Printf("Logged in as %s\n", user.Username)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&username, "username", "u", "", "Username to sign in with")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
}

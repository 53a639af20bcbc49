package user

import (
	"fmt"

	"github.com/aussiebroadwan/gatekeep/pkg/rbacsdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	createEmail    string
	createFullName string
	createRoles    []int64

	updateEmail    string
	updateFullName string
)

var createCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user account",
	Long: `Creates a new user account. The initial password is prompted for so it
never lands in shell history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session()
		if err != nil {
			return err
		}

		password, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Initial password")
		if err != nil {
			return err
		}

		created, err := s.CreateUser(cmd.Context(), rbacsdk.CreateUserRequest{
			Username: args[0],
			Password: password,
			Email:    createEmail,
			FullName: createFullName,
			Roles:    createRoles,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		pterm.Success.Printf("Created user %s (id %d)\n", created.Username, created.ID)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user account",
	Long:  `Updates the given fields of an account. Omitted flags are left untouched.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session()
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		updated, err := s.UpdateUser(cmd.Context(), id, rbacsdk.UpdateUserRequest{
			Email:    updateEmail,
			FullName: updateFullName,
		})
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		pterm.Success.Printf("Updated user %s\n", updated.Username)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session()
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := s.DeleteUser(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		pterm.Success.Printf("Deleted user %d\n", id)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createEmail, "email", "", "Email address")
	createCmd.Flags().StringVar(&createFullName, "full-name", "", "Display name")
	createCmd.Flags().Int64SliceVar(&createRoles, "roles", nil, "Role ids to assign")

	updateCmd.Flags().StringVar(&updateEmail, "email", "", "New email address")
	updateCmd.Flags().StringVar(&updateFullName, "full-name", "", "New display name")
}

package user

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var enableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a user account",
	Long:  `Disables an account. The user keeps their roles but can no longer sign in.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], false)
	},
}

var setRolesCmd = &cobra.Command{
	Use:   "set-roles <id> <role-id>...",
	Short: "Replace a user's role assignments",
	Long:  `Replaces the full role assignment set with the given role ids.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session()
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		roleIDs := make([]int64, 0, len(args)-1)
		for _, arg := range args[1:] {
			roleID, err := parseID(arg)
			if err != nil {
				return err
			}
			roleIDs = append(roleIDs, roleID)
		}

		if err := s.SetUserRoles(cmd.Context(), id, roleIDs); err != nil {
			return fmt.Errorf("failed to set roles: %w", err)
		}

		pterm.Success.Printf("Assigned %d role(s) to user %d\n", len(roleIDs), id)
		return nil
	},
}

var revokeTokensCmd = &cobra.Command{
	Use:   "revoke-tokens <id>",
	Short: "Revoke all tokens issued to a user",
	Long:  `Forces the user to re-authenticate by invalidating every issued token.`,
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

		if err := s.InvalidateUserTokens(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to revoke tokens: %w", err)
		}

		pterm.Success.Printf("Revoked tokens for user %d\n", id)
		return nil
	},
}

func setStatus(cmd *cobra.Command, rawID string, enabled bool) error {
	s, err := session()
	if err != nil {
		return err
	}

	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	if err := s.SetUserStatus(cmd.Context(), id, enabled); err != nil {
		return fmt.Errorf("failed to change user status: %w", err)
	}

	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	pterm.Success.Printf("User %d %s\n", id, state)
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

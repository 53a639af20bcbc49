package role

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/aussiebroadwan/gatekeep/cmd/gatectl/internal/cli"
	"github.com/aussiebroadwan/gatekeep/pkg/rbacsdk"
	"github.com/spf13/cobra"
)

var app *cli.App

// RoleCmd is the parent command for role and policy management
var RoleCmd = &cobra.Command{
	Use:   "role",
	Short: "Manage roles and their policy wiring",
	Long: `Commands for listing roles, creating them, and attaching or detaching the
policies they carry.`,
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

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session()
		if err != nil {
			return err
		}

		resp, err := s.ListRoles(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list roles: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, r := range resp.Roles {
			desc := r.Description
			if desc == "" {
				desc = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\n", r.ID, r.Name, desc)
		}
		return w.Flush()
	},
}

func init() {
	RoleCmd.AddCommand(listCmd)
	RoleCmd.AddCommand(createCmd)
	RoleCmd.AddCommand(policiesCmd)
	RoleCmd.AddCommand(linkPolicyCmd)
	RoleCmd.AddCommand(unlinkPolicyCmd)
}

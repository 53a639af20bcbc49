package user

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aussiebroadwan/gatekeep/pkg/rbacsdk"
	"github.com/spf13/cobra"
)

var listRole string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	Long:  `Lists all user accounts, or only those holding a role via --role.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session()
		if err != nil {
			return err
		}

		var users []userRow
		if listRole != "" {
			resp, err := s.ListUsersByRole(cmd.Context(), listRole)
			if err != nil {
				return fmt.Errorf("failed to list users by role: %w", err)
			}
			users = toRows(resp.Users)
		} else {
			resp, err := s.ListUsers(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}
			users = toRows(resp.Users)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tENABLED\tROLES")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n", u.id, u.username, u.email, u.enabled, u.roles)
		}
		return w.Flush()
	},
}

type userRow struct {
	id       int64
	username string
	email    string
	enabled  bool
	roles    string
}

func toRows(users []rbacsdk.User) []userRow {
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		roleIDs := make([]string, 0, len(u.Roles))
		for _, id := range u.Roles {
			roleIDs = append(roleIDs, strconv.FormatInt(id, 10))
		}
		roles := "-"
		if len(roleIDs) > 0 {
			roles = strings.Join(roleIDs, ", ")
		}
		rows = append(rows, userRow{
			id:       u.ID,
			username: u.Username,
			email:    u.Email,
			enabled:  u.Enabled,
			roles:    roles,
		})
	}
	return rows
}

func init() {
	listCmd.Flags().StringVar(&listRole, "role", "", "Only list users holding this role")
}

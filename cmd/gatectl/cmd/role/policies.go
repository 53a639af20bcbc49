package role

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/gatekeep/pkg/rbacsdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var createDescription string

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session()
		if err != nil {
			return err
		}

		created, err := s.AdminRoles().Create(cmd.Context(), rbacsdk.Role{
			Name:        args[0],
			Description: createDescription,
		})
		if err != nil {
			return fmt.Errorf("failed to create role: %w", err)
		}

		pterm.Success.Printf("Created role %s (id %d)\n", created.Name, created.ID)
		return nil
	},
}

var policiesCmd = &cobra.Command{
	Use:   "policies <role-id>",
	Short: "List the policies attached to a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session()
		if err != nil {
			return err
		}

		roleID, err := parseID(args[0])
		if err != nil {
			return err
		}

		ids, err := s.RolePolicies().ListEdgesFor(cmd.Context(), roleID)
		if err != nil {
			return fmt.Errorf("failed to list role policies: %w", err)
		}

		if len(ids) == 0 {
			pterm.Info.Printf("Role %d has no policies\n", roleID)
			return nil
		}

		rendered := make([]string, 0, len(ids))
		for _, id := range ids {
			rendered = append(rendered, strconv.FormatInt(id, 10))
		}
		pterm.Printf("Policies: %s\n", strings.Join(rendered, ", "))
		return nil
	},
}

var linkPolicyCmd = &cobra.Command{
	Use:   "link-policy <role-id> <policy-id>...",
	Short: "Attach policies to a role",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session()
		if err != nil {
			return err
		}

		roleID, policyIDs, err := parseOwnerAndRelated(args)
		if err != nil {
			return err
		}

		if err := s.RolePolicies().Link(cmd.Context(), roleID, policyIDs); err != nil {
			return fmt.Errorf("failed to link policies: %w", err)
		}

		pterm.Success.Printf("Linked %d policy(ies) to role %d\n", len(policyIDs), roleID)
		return nil
	},
}

var unlinkPolicyCmd = &cobra.Command{
	Use:   "unlink-policy <role-id> <policy-id>",
	Short: "Detach a policy from a role",
	Long:  `Detaches a policy. Detaching a policy that is not attached is not an error.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session()
		if err != nil {
			return err
		}

		roleID, err := parseID(args[0])
		if err != nil {
			return err
		}
		policyID, err := parseID(args[1])
		if err != nil {
			return err
		}

		if err := s.RolePolicies().Unlink(cmd.Context(), roleID, policyID); err != nil {
			return fmt.Errorf("failed to unlink policy: %w", err)
		}

		pterm.Success.Printf("Unlinked policy %d from role %d\n", policyID, roleID)
		return nil
	},
}

func parseOwnerAndRelated(args []string) (int64, []int64, error) {
	ownerID, err := parseID(args[0])
	if err != nil {
		return 0, nil, err
	}

	relatedIDs := make([]int64, 0, len(args)-1)
	for _, arg := range args[1:] {
		id, err := parseID(arg)
		if err != nil {
			return 0, nil, err
		}
		relatedIDs = append(relatedIDs, id)
	}
	return ownerID, relatedIDs, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func init() {
	createCmd.Flags().StringVar(&createDescription, "description", "", "Role description")
}

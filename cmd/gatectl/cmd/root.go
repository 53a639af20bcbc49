package cmd

import (
	"fmt"
	"os"

	"github.com/aussiebroadwan/gatekeep/cmd/gatectl/cmd/audit"
	"github.com/aussiebroadwan/gatekeep/cmd/gatectl/cmd/auth"
	"github.com/aussiebroadwan/gatekeep/cmd/gatectl/cmd/role"
	"github.com/aussiebroadwan/gatekeep/cmd/gatectl/cmd/user"
	"github.com/aussiebroadwan/gatekeep/cmd/gatectl/internal/cli"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
	"github.com/spf13/cobra"
)

var (
	serverURL string
	app       *cli.App
)

var rootCmd = &cobra.Command{
	Use:   "gatectl",
	Short: "Gatekeep CLI - role and policy administration client",
	Long: `gatectl is the command-line interface for Gatekeep, a role, policy and
capability authorization service. Use it to sign in, manage users and roles,
wire policies to capabilities, and inspect the audit trail.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		app, err = cli.NewApp(serverURL)
		if err != nil {
			return err
		}

		// SDK request failures log through the context's logger.
		cmd.SetContext(slogx.WithContext(cmd.Context(), app.Log))

		auth.SetApp(app)
		user.SetApp(app)
		role.SetApp(app)
		audit.SetApp(app)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			_ = app.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&serverURL, "server", "", "Gatekeep API server URL (overrides GATEKEEP_SERVER)")
	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(user.UserCmd)
	rootCmd.AddCommand(role.RoleCmd)
	rootCmd.AddCommand(audit.AuditCmd)
}

package audit

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/aussiebroadwan/gatekeep/cmd/gatectl/internal/cli"
	"github.com/aussiebroadwan/gatekeep/pkg/rbacsdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var app *cli.App

// AuditCmd is the parent command for audit trail inspection
var AuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the audit trail",
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

var (
	filterUsername string
	filterAction   string
	page           int
	perPage        int

	exportFile string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit records",
	Long:  `Lists audit records, newest first. Filter by --username or --action.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session()
		if err != nil {
			return err
		}

		resp, err := s.ListAuditLogs(cmd.Context(), rbacsdk.AuditQuery{
			Username: filterUsername,
			Action:   filterAction,
			Page:     page,
			PerPage:  perPage,
		})
		if err != nil {
			return fmt.Errorf("failed to list audit logs: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTIME\tUSERNAME\tACTION\tRESOURCE")
		for _, entry := range resp.Logs {
			resource := entry.Resource
			if resource == "" {
				resource = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				entry.ID, entry.CreatedAt, entry.Username, entry.Action, resource)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		pterm.Info.Printf("%d record(s) total\n", resp.Total)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full audit trail",
	Long:  `Downloads the audit trail in the server's export format (CSV).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session()
		if err != nil {
			return err
		}

		data, err := s.ExportAuditLogs(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to export audit logs: %w", err)
		}

		if exportFile == "" {
			_, err = os.Stdout.Write(data)
			return err
		}

		if err := os.WriteFile(exportFile, data, 0o600); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}

		pterm.Success.Printf("Wrote %d bytes to %s\n", len(data), exportFile)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&filterUsername, "username", "", "Only records for this username")
	listCmd.Flags().StringVar(&filterAction, "action", "", "Only records for this action")
	listCmd.Flags().IntVar(&page, "page", 1, "Page number")
	listCmd.Flags().IntVar(&perPage, "per-page", 50, "Records per page")

	exportCmd.Flags().StringVarP(&exportFile, "output", "o", "", "Write the export to a file instead of stdout")

	AuditCmd.AddCommand(listCmd)
	AuditCmd.AddCommand(exportCmd)
}

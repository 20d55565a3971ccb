package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
)

var (
	reportJSON   bool
	reportLimit  int
	reportOffset int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Query stored reports",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reports, newest first",
	Args:  cobra.NoArgs,
	RunE:  runReportList,
}

var reportGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a stored report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportGet,
}

var reportPANCmd = &cobra.Command{
	Use:   "pan [pan]",
	Short: "Show the most recent report for a PAN",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportPAN,
}

var reportDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a stored report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportDelete,
}

func init() {
	reportCmd.PersistentFlags().BoolVar(&reportJSON, "json", false, "output as JSON")
	reportListCmd.Flags().IntVarP(&reportLimit, "limit", "n", 0, "maximum number of reports (0 = configured page size)")
	reportListCmd.Flags().IntVar(&reportOffset, "offset", 0, "number of reports to skip")

	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportGetCmd)
	reportCmd.AddCommand(reportPANCmd)
	reportCmd.AddCommand(reportDeleteCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportList(cmd *cobra.Command, _ []string) error {
	if err := requireReports(); err != nil {
		return err
	}

	listings, err := reportService.List(cmd.Context(), domain.ListOptions{Limit: reportLimit, Offset: reportOffset})
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	if reportJSON {
		return writeJSON(cmd.OutOrStdout(), listings)
	}
	renderListings(cmd.OutOrStdout(), listings)
	return nil
}

func runReportGet(cmd *cobra.Command, args []string) error {
	if err := requireReports(); err != nil {
		return err
	}

	report, err := reportService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get report: %w", err)
	}
	return outputReport(cmd, report)
}

func runReportPAN(cmd *cobra.Command, args []string) error {
	if err := requireReports(); err != nil {
		return err
	}

	report, err := reportService.GetByPAN(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get report: %w", err)
	}
	return outputReport(cmd, report)
}

func runReportDelete(cmd *cobra.Command, args []string) error {
	if err := requireReports(); err != nil {
		return err
	}

	if err := reportService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	cmd.Printf("Deleted report %s\n", args[0])
	return nil
}

func outputReport(cmd *cobra.Command, report *domain.Report) error {
	if reportJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	renderReport(cmd.OutOrStdout(), report)
	return nil
}

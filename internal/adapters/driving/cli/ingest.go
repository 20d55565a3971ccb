package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bureau-cli/internal/logger"
)

var (
	extractPretty bool
	seedKeep      bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract a bureau report without storing it",
	Long: `Parses an Experian or legacy bureau XML file and prints the normalised
record as JSON. Nothing is stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Extract and store bureau reports",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngest,
}

var seedCmd = &cobra.Command{
	Use:   "seed [dir]",
	Short: "Load every XML report in a directory",
	Long: `Clears stored reports and loads every .xml file in the directory in name
order. Defaults to the configured samples directory. A file that fails to load
is reported and the batch continues.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSeed,
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest XML reports as they arrive in a directory",
	Long: `Watches a directory and ingests each .xml file once it has been written.
Defaults to the configured inbox directory. Stops on interrupt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	extractCmd.Flags().BoolVar(&extractPretty, "pretty", false, "render the report instead of JSON")
	seedCmd.Flags().BoolVar(&seedKeep, "keep", false, "keep existing reports instead of clearing them")
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(watchCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if err := requireIngest(); err != nil {
		return err
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	report, err := ingestService.Extract(domain.Upload{Name: args[0], Content: content})
	if err != nil {
		return err
	}

	if extractPretty {
		renderReport(cmd.OutOrStdout(), report)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), report)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := requireIngest(); err != nil {
		return err
	}

	st := newStyles(cmd.OutOrStdout())
	failed := 0
	for _, path := range args {
		report, err := ingestService.IngestFile(cmd.Context(), path)
		if err != nil {
			failed++
			cmd.Println(st.Error.Render(fmt.Sprintf("✗ %s: %v", path, err)))
			continue
		}
		cmd.Printf("%s %s -> %s (%s)\n", st.Success.Render("✓"), path, report.ID, report.BasicDetails.Name)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := requireIngest(); err != nil {
		return err
	}

	dir, err := dirArg(args, func(s *domain.AppSettings) string { return s.Ingest.SamplesDir })
	if err != nil {
		return err
	}

	result, err := ingestService.Seed(cmd.Context(), dir, driving.SeedOptions{Reset: !seedKeep})
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	st := newStyles(cmd.OutOrStdout())
	for _, loaded := range result.Loaded {
		cmd.Printf("%s Loaded %s -> %s\n", st.Success.Render("✓"), loaded.File, loaded.ReportID)
	}
	for _, failure := range result.Failed {
		cmd.Println(st.Error.Render(fmt.Sprintf("✗ %s: %v", failure.File, failure.Err)))
	}
	cmd.Printf("Seeded %d report(s), %d failed.\n", len(result.Loaded), len(result.Failed))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := requireIngest(); err != nil {
		return err
	}

	dir, err := dirArg(args, func(s *domain.AppSettings) string { return s.Ingest.InboxDir })
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create inbox: %w", err)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := newStyles(cmd.OutOrStdout())
	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)
	return ingestService.Watch(ctx, dir, func(e driving.WatchEvent) {
		name := filepath.Base(e.File)
		if e.Err != nil {
			logger.Error("Failed to ingest %s: %v", name, e.Err)
			cmd.Println(st.Error.Render(fmt.Sprintf("✗ %s: %v", name, e.Err)))
			return
		}
		cmd.Printf("%s %s -> %s\n", st.Success.Render("✓"), name, e.Report.ID)
	})
}

// dirArg returns the directory argument or the configured default.
func dirArg(args []string, fallback func(*domain.AppSettings) string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if settingsService == nil {
		return "", fmt.Errorf("directory argument required: %w", domain.ErrInvalidInput)
	}
	settings, err := settingsService.Get()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return fallback(settings), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

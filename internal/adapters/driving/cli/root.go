// Package cli provides the cobra command tree for the bureau binary.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bureau-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bureau-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services injected by main or by Bootstrap.
var (
	ingestService   driving.IngestService
	reportService   driving.ReportService
	settingsService driving.SettingsService
	closeServices   func() error
)

// Services bundles the core services the commands drive.
type Services struct {
	Ingest   driving.IngestService
	Reports  driving.ReportService
	Settings driving.SettingsService

	// Close releases stores and caches. May be nil.
	Close func() error
}

// Bootstrap builds the services once flags are parsed.
// configDir is the --config-dir flag value and may be empty.
type Bootstrap func(configDir string) (*Services, error)

var bootstrap Bootstrap

var rootCmd = &cobra.Command{
	Use:   "bureau",
	Short: "Credit bureau report extraction",
	Long: `bureau extracts Experian and legacy credit bureau XML reports into one
normalised record, stores them and serves them over HTTP and MCP.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.bureau)")
}

// SetServices injects the core services into the command tree.
func SetServices(s *Services) {
	ingestService = s.Ingest
	reportService = s.Reports
	settingsService = s.Settings
	closeServices = s.Close
}

// SetBootstrap registers the function that builds services after flag parsing.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command and releases services afterwards.
func Execute() error {
	err := rootCmd.Execute()
	if closeServices != nil {
		if cerr := closeServices(); cerr != nil {
			logger.Warn("Failed to close services: %v", cerr)
		}
	}
	return err
}

func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || ingestService != nil {
		return nil
	}

	services, err := bootstrap(configDir)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(services)
	return nil
}

func requireIngest() error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	return nil
}

func requireReports() error {
	if reportService == nil {
		return errors.New("report service not configured")
	}
	return nil
}

func requireSettings() error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bureau-cli/internal/adapters/driving/api"
	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the upload and report API:

  POST /api/upload             multipart field "file"
  GET  /api/reports            latest reports
  GET  /api/reports/{id}       one report
  GET  /api/reports/pan/{pan}  most recent report for a PAN
  GET  /healthz`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings, :5000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	server, err := newAPIServer()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("HTTP API listening on %s\n", server.Addr())
	if err := server.Run(ctx); err != nil {
		logger.Error("HTTP server stopped: %v", err)
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func newAPIServer() (*api.Server, error) {
	if err := requireIngest(); err != nil {
		return nil, err
	}
	if err := requireReports(); err != nil {
		return nil, err
	}

	serverSettings := domain.DefaultAppSettings().Server
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("failed to get settings: %w", err)
		}
		serverSettings = settings.Server
	}

	cfg := api.ConfigFromSettings(serverSettings)
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	return api.NewServer(ingestService, reportService, cfg)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bureau-cli/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in the config file.

Environment variables (BUREAU_STORAGE_DRIVER, BUREAU_DATA_DIR, DATABASE_URL,
REDIS_ADDR, PORT) override file values and are never written back.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, key := range services.Keys() {
			cmd.Println(key)
		}
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Driver: %s\n", settings.Storage.Driver.Description())
	cmd.Printf("  Data Dir: %s\n", orDefault(settings.Storage.DataDir, "~/.bureau/data"))
	if settings.Storage.PostgresDSN != "" {
		cmd.Printf("  Postgres DSN: %s\n", maskSecret(settings.Storage.PostgresDSN))
	}
	cmd.Println()

	cmd.Println("[Cache]")
	if settings.Cache.Enabled() {
		cmd.Printf("  Redis: %s\n", settings.Cache.RedisAddr)
		cmd.Printf("  TTL: %ds\n", settings.Cache.TTLSeconds)
	} else {
		cmd.Println("  Redis: (disabled)")
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Printf("  Upload Dir: %s\n", orDefault(settings.Server.UploadDir, "(system temp)"))
	cmd.Printf("  Max Upload: %d MB\n", settings.Server.MaxUploadMB)
	cmd.Printf("  Rate Limit: %.1f/s (burst %d)\n", settings.Server.RatePerSecond, settings.Server.Burst)
	cmd.Println()

	cmd.Println("[Ingest]")
	cmd.Printf("  Samples Dir: %s\n", settings.Ingest.SamplesDir)
	cmd.Printf("  Inbox Dir: %s\n", settings.Ingest.InboxDir)
	cmd.Println()

	cmd.Println("[Reports]")
	cmd.Printf("  Page Size: %d\n", settings.Reports.PageSize)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// maskSecret masks a secret for display, showing only the first and last 4 characters.
func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

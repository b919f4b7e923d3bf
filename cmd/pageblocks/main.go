// pageblocks: prebuilt page blocks and chart widgets.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seenimoa/pageblocks/api"
	"github.com/seenimoa/pageblocks/internal/blocks"
	"github.com/seenimoa/pageblocks/internal/config"
	"github.com/seenimoa/pageblocks/internal/logging"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set in PersistentPreRunE.
var (
	cfg    *config.Config
	logger = zap.NewNop()
)

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pageblocks",
	Short: "pageblocks: prebuilt page blocks and chart widgets",
	Long: `pageblocks renders a catalog of server-side page blocks (marketing,
ecommerce, dashboard and portfolio sections) and the SVG pie, donut, line,
bar and gauge charts they embed. Blocks can be previewed over HTTP or
exported as static HTML.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		api.Version = version
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(arcsCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "pageblocks %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and catalog summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		catalog := blocks.Default()

		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintln(out, "  pageblocks: Status")
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintf(out, "  Version:   %s (%s)\n", version, commit)
		fmt.Fprintf(out, "  Blocks:    %d\n", catalog.Len())
		for _, category := range catalog.Categories() {
			fmt.Fprintf(out, "    %-12s %d\n", category+":", len(catalog.ByCategory(category)))
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, "  Configuration:")
		for _, s := range config.Describe(cfg) {
			fmt.Fprintf(out, "    %-22s %-16s (%s)\n", s.Key+":", s.Value, s.Source)
		}
		fmt.Fprintln(out, "═══════════════════════════════════════")
		return nil
	},
}

package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seenimoa/pageblocks/api"
	"github.com/seenimoa/pageblocks/internal/blocks"
	"github.com/seenimoa/pageblocks/internal/export"
	"github.com/seenimoa/pageblocks/web"
)

// --- Blocks Commands ---

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "List and render catalog blocks",
}

var blocksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog blocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		catalog := blocks.Default()

		list := catalog.List()
		if category != "" {
			list = catalog.ByCategory(category)
		}

		out := cmd.OutOrStdout()
		for _, b := range list {
			fmt.Fprintf(out, "%-10s %-24s %s\n", b.Category, b.Name, b.Description)
		}
		return nil
	},
}

var blocksRenderCmd = &cobra.Command{
	Use:   "render <name>",
	Short: "Render a block as HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetBool("page")
		outFile, _ := cmd.Flags().GetString("out")
		catalog := blocks.Default()

		var buf bytes.Buffer
		var err error
		if page {
			err = catalog.RenderPage(&buf, args, blocks.PageConfig{})
		} else {
			err = catalog.RenderFragment(&buf, args[0])
		}
		if err != nil {
			return err
		}

		if outFile == "" {
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}
		if err := os.WriteFile(outFile, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outFile, err)
		}
		logger.Info("block written", zap.String("block", args[0]), zap.String("file", outFile))
		return nil
	},
}

func init() {
	blocksListCmd.Flags().String("category", "", "only list blocks in this category")
	blocksRenderCmd.Flags().Bool("page", false, "wrap the block in a full HTML page")
	blocksRenderCmd.Flags().String("out", "", "output file (default: stdout)")

	blocksCmd.AddCommand(blocksListCmd)
	blocksCmd.AddCommand(blocksRenderCmd)
}

// --- Export Command ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every block as static HTML",
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir := cfg.Export.OutDir
		if cmd.Flags().Changed("out") {
			outDir, _ = cmd.Flags().GetString("out")
		}
		concurrency := cfg.Export.Concurrency
		if cmd.Flags().Changed("concurrency") {
			concurrency, _ = cmd.Flags().GetInt("concurrency")
		}

		e := &export.Exporter{
			Catalog:     blocks.Default(),
			OutDir:      outDir,
			Concurrency: concurrency,
			Logger:      logger,
			Assets:      web.StaticFS(),
		}
		res, err := e.Run(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d files to %s in %s\n", len(res.Files), outDir, res.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "./dist", "output directory (default from config)")
	exportCmd.Flags().Int("concurrency", 4, "parallel renders (default from config)")
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		srv := api.NewServer(cfg, blocks.Default(), logger)
		return srv.ListenAndServe(cmd.Context(), cfg.Addr())
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "listen port (default from config)")
}

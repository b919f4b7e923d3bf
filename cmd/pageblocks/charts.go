package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seenimoa/pageblocks/internal/chart"
	"github.com/seenimoa/pageblocks/internal/geometry"
)

// parseSlices parses "Label:value[:color],..." into slices.
func parseSlices(spec string) ([]geometry.Slice, error) {
	var slices []geometry.Slice
	for i, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("slice %d: want label:value[:color], got %q", i, item)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("slice %d (%q): bad value: %w", i, parts[0], err)
		}
		s := geometry.Slice{Label: strings.TrimSpace(parts[0]), Value: v}
		if len(parts) == 3 {
			s.Color = strings.TrimSpace(parts[2])
		}
		slices = append(slices, s)
	}
	if len(slices) == 0 {
		return nil, errors.New("no slices given")
	}
	return slices, nil
}

// --- Arcs Command ---

var arcsCmd = &cobra.Command{
	Use:   "arcs",
	Short: "Compute arc geometry for a pie or donut",
	Long: `Compute the start/end angles, boundary points and SVG path data of
every slice of a ring.

Examples:
  pageblocks arcs --slices "Direct:55:#2563eb,Social:35,Referral:10"
  pageblocks arcs --slices "A:1,B:1" --inner 0 --outer 50 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, _ := cmd.Flags().GetString("slices")
		inner, _ := cmd.Flags().GetFloat64("inner")
		outer, _ := cmd.Flags().GetFloat64("outer")
		asJSON, _ := cmd.Flags().GetBool("json")

		slices, err := parseSlices(spec)
		if err != nil {
			return err
		}
		start := cfg.Render.StartAngle
		if cmd.Flags().Changed("start") {
			start, _ = cmd.Flags().GetFloat64("start")
		}

		ring := geometry.NewRing(slices, inner, outer).WithStartAngle(start)
		arcs, err := geometry.Compute(ring)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			type arcJSON struct {
				geometry.ArcPath
				D string `json:"d"`
			}
			rows := make([]arcJSON, len(arcs))
			for i, a := range arcs {
				rows[i] = arcJSON{ArcPath: a, D: a.DWithPrecision(cfg.Render.Precision)}
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}

		fmt.Fprintf(out, "%-12s %9s %9s %9s %9s %5s\n", "LABEL", "VALUE", "START", "END", "SPAN", "LARGE")
		for _, a := range arcs {
			fmt.Fprintf(out, "%-12s %9g %9.2f %9.2f %9.2f %5d\n",
				a.Label, a.Value, a.StartAngle, a.EndAngle, a.Span, a.LargeArc)
		}
		fmt.Fprintln(out)
		for _, a := range arcs {
			fmt.Fprintf(out, "%s: %s\n", a.Label, a.DWithPrecision(cfg.Render.Precision))
		}
		return nil
	},
}

func init() {
	arcsCmd.Flags().String("slices", "", `slices as "label:value[:color],..."`)
	arcsCmd.Flags().Float64("inner", 60, "inner radius (0 for a pie)")
	arcsCmd.Flags().Float64("outer", 100, "outer radius")
	arcsCmd.Flags().Float64("start", geometry.DefaultStartAngle, "start angle in degrees (default from config)")
	arcsCmd.Flags().Bool("json", false, "print JSON instead of a table")
	_ = arcsCmd.MarkFlagRequired("slices")
}

// --- Chart Command ---

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render a donut chart as SVG",
	Long: `Render slices as a donut (or pie with --inner-ratio 0) SVG.

Examples:
  pageblocks chart --slices "Direct:55,Social:35,Referral:10" --out traffic.svg
  pageblocks chart --slices "Mobile:61,Desktop:39" --inner-ratio 0 --title Devices`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, _ := cmd.Flags().GetString("slices")
		outFile, _ := cmd.Flags().GetString("out")
		title, _ := cmd.Flags().GetString("title")
		centerLabel, _ := cmd.Flags().GetString("center-label")

		slices, err := parseSlices(spec)
		if err != nil {
			return err
		}

		opts := chart.DefaultDonutOptions()
		opts.InnerRatio = cfg.Render.InnerRatio
		if cmd.Flags().Changed("inner-ratio") {
			opts.InnerRatio, _ = cmd.Flags().GetFloat64("inner-ratio")
		}
		opts.StartAngle = cfg.Render.StartAngle
		opts.CenterLabel = centerLabel

		cc := chart.WidgetConfig(cfg.Render.Width+160, cfg.Render.Height)
		cc.Precision = cfg.Render.Precision
		cc.Title = title
		if title != "" {
			cc.MarginTop = 32
		}

		svg, err := chart.DonutChart(slices, opts, cc)
		if err != nil && !errors.Is(err, geometry.ErrDegenerateInput) {
			return err
		}
		if err != nil {
			logger.Warn("all slices are zero, writing placeholder", zap.Error(err))
		}

		if outFile == "" {
			_, werr := fmt.Fprintln(cmd.OutOrStdout(), svg)
			return werr
		}
		if err := os.WriteFile(outFile, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outFile, err)
		}
		logger.Info("chart written", zap.String("file", outFile), zap.Int("slices", len(slices)))
		return nil
	},
}

func init() {
	chartCmd.Flags().String("slices", "", `slices as "label:value[:color],..."`)
	chartCmd.Flags().Float64("inner-ratio", 0.6, "hole size as a fraction of the radius (default from config)")
	chartCmd.Flags().String("title", "", "chart title")
	chartCmd.Flags().String("center-label", "", "text in the donut hole")
	chartCmd.Flags().String("out", "", "output file (default: stdout)")
	_ = chartCmd.MarkFlagRequired("slices")
}

// --- Inspect Command ---

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "List chart slices found in rendered SVG or HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		entries, err := chart.ExtractLegend(string(data))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "no chart slices found")
			return nil
		}
		fmt.Fprintf(out, "%-16s %10s %8s  %s\n", "LABEL", "VALUE", "PERCENT", "COLOR")
		for _, e := range entries {
			fmt.Fprintf(out, "%-16s %10g %8s  %s\n", e.Label, e.Value, e.Percent, e.Color)
		}
		return nil
	},
}

// Package chart renders the SVG charts used by dashboard blocks: donut and
// pie charts built on internal/geometry, a gauge, a line chart and a
// horizontal bar chart. Every function returns a standalone <svg> string.
package chart

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/seenimoa/pageblocks/internal/geometry"
	"github.com/seenimoa/pageblocks/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Config
// ════════════════════════════════════════════════════════════════════

// ChartConfig holds rendering parameters for SVG charts.
type ChartConfig struct {
	Width        int      // SVG width in pixels (default: 800)
	Height       int      // SVG height in pixels (default: 400)
	MarginTop    int      // top margin (default: 40)
	MarginRight  int      // right margin (default: 60)
	MarginBottom int      // bottom margin (default: 50)
	MarginLeft   int      // left margin (default: 70)
	BgColor      string   // background color (default: "#ffffff")
	GridColor    string   // grid line color (default: "#e8e8e8")
	TextColor    string   // label color (default: "#333333")
	FontSize     int      // label font size (default: 11)
	Title        string   // chart title, omitted when empty
	Precision    int      // decimals in path data (default: geometry.DefaultPrecision)
	Palette      []string // fill colors for slices/series without one
}

// DefaultPalette is used for slices and series that carry no color.
var DefaultPalette = []string{"#2563eb", "#16a34a", "#ea580c", "#9333ea", "#0891b2", "#e11d48", "#ca8a04", "#64748b"}

// DefaultChartConfig returns sensible defaults for chart rendering.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:        800,
		Height:       400,
		MarginTop:    40,
		MarginRight:  60,
		MarginBottom: 50,
		MarginLeft:   70,
		BgColor:      "#ffffff",
		GridColor:    "#e8e8e8",
		TextColor:    "#333333",
		FontSize:     11,
		Precision:    geometry.DefaultPrecision,
		Palette:      DefaultPalette,
	}
}

// WidgetConfig returns a compact config for charts embedded in a card:
// tight margins, transparent background and no title.
func WidgetConfig(width, height int) ChartConfig {
	cfg := DefaultChartConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.MarginTop = 8
	cfg.MarginRight = 8
	cfg.MarginBottom = 8
	cfg.MarginLeft = 8
	cfg.BgColor = "none"
	return cfg
}

// plotArea returns the usable drawing area dimensions.
func (c ChartConfig) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

func (c ChartConfig) color(i int) string {
	p := c.Palette
	if len(p) == 0 {
		p = DefaultPalette
	}
	return p[i%len(p)]
}

// ════════════════════════════════════════════════════════════════════
// Donut / Pie
// ════════════════════════════════════════════════════════════════════

const legendWidth = 150

// ErrPlotTooSmall is returned when margins leave no room for the ring.
var ErrPlotTooSmall = errors.New("chart: plot area too small")

// DonutOptions controls ring shape and decorations.
type DonutOptions struct {
	InnerRatio  float64 // inner radius as a fraction of the outer radius; 0 draws a pie
	StartAngle  float64 // degrees, screen space
	CenterLabel string  // large text in the hole (donut only)
	CenterSub   string  // small text under CenterLabel
	ShowLegend  bool
}

// DefaultDonutOptions returns a 60% hole starting at 12 o'clock with a legend.
func DefaultDonutOptions() DonutOptions {
	return DonutOptions{
		InnerRatio: 0.6,
		StartAngle: geometry.DefaultStartAngle,
		ShowLegend: true,
	}
}

// DonutChart renders slices as a donut. Slices without a color take one
// from the palette.
//
// When every slice weighs zero the returned SVG is a grey placeholder ring
// and the error wraps geometry.ErrDegenerateInput, so callers can either
// show the placeholder or branch on the error. Other errors come with a
// plain "invalid" placeholder.
func DonutChart(slices []geometry.Slice, opts DonutOptions, cfg ChartConfig) (string, error) {
	if cfg.Width == 0 {
		cfg = DefaultChartConfig()
	}

	px, py, pw, ph := cfg.plotArea()
	legendW := 0
	if opts.ShowLegend {
		legendW = legendWidth
	}
	diameter := math.Min(float64(pw-legendW), float64(ph))
	if diameter <= 0 {
		return emptySVG(cfg, "Chart too small"), ErrPlotTooSmall
	}

	outer := diameter / 2
	center := geometry.Point{X: float64(px) + outer, Y: float64(py) + float64(ph)/2}
	ring := geometry.NewRing(withPalette(slices, cfg), outer*opts.InnerRatio, outer).
		WithCenter(center).
		WithStartAngle(opts.StartAngle)

	arcs, err := geometry.Compute(ring)
	if err != nil {
		if errors.Is(err, geometry.ErrDegenerateInput) {
			return placeholderRing(cfg, ring), fmt.Errorf("donut chart: %w", err)
		}
		return emptySVG(cfg, "Invalid chart data"), fmt.Errorf("donut chart: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	writeBackground(&sb, cfg)
	writeTitle(&sb, cfg)

	for _, a := range arcs {
		d := a.DWithPrecision(cfg.Precision)
		if d == "" {
			continue
		}
		pct := utils.FormatPercent(a.Fraction, 1)
		sb.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" data-label="%s" data-value="%s" data-percent="%s"><title>%s: %s</title></path>`,
			d, escapeXML(a.Color), escapeXML(a.Label), formatValue(a.Value), pct,
			escapeXML(a.Label), pct))
	}

	if ring.Inner > 0 && opts.CenterLabel != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
			center.X, center.Y+5, cfg.FontSize+7, cfg.TextColor, escapeXML(opts.CenterLabel)))
		if opts.CenterSub != "" {
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" fill="#6b7280" text-anchor="middle">%s</text>`,
				center.X, center.Y+22, cfg.FontSize-1, escapeXML(opts.CenterSub)))
		}
	}

	if opts.ShowLegend {
		lx := px + int(diameter) + 16
		ly := py + ph/2 - len(arcs)*legendRowHeight/2
		sb.WriteString(LegendSVG(Legend(arcs), lx, ly, cfg))
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

// PieChart renders slices as a full disc.
func PieChart(slices []geometry.Slice, opts DonutOptions, cfg ChartConfig) (string, error) {
	opts.InnerRatio = 0
	opts.CenterLabel = ""
	return DonutChart(slices, opts, cfg)
}

// withPalette returns a copy of slices with empty colors filled in.
func withPalette(slices []geometry.Slice, cfg ChartConfig) []geometry.Slice {
	out := make([]geometry.Slice, len(slices))
	for i, s := range slices {
		if s.Color == "" {
			s.Color = cfg.color(i)
		}
		out[i] = s
	}
	return out
}

// placeholderRing draws the empty state for a ring with no weight.
func placeholderRing(cfg ChartConfig, ring geometry.Ring) string {
	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	writeBackground(&sb, cfg)
	writeTitle(&sb, cfg)

	c := ring.Center
	if ring.Inner > 0 {
		mid := (ring.Outer + ring.Inner) / 2
		sb.WriteString(fmt.Sprintf(`<circle class="placeholder" cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#e5e7eb" stroke-width="%.1f"/>`,
			c.X, c.Y, mid, ring.Outer-ring.Inner))
	} else {
		sb.WriteString(fmt.Sprintf(`<circle class="placeholder" cx="%.1f" cy="%.1f" r="%.1f" fill="#e5e7eb"/>`,
			c.X, c.Y, ring.Outer))
	}
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" fill="#9ca3af" text-anchor="middle">No data</text>`,
		c.X, c.Y+4, cfg.FontSize+1))
	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// Line Chart
// ════════════════════════════════════════════════════════════════════

// LineSeries represents a named data series for line charts.
type LineSeries struct {
	Name   string
	Values []float64
	Color  string // optional, palette color when empty
}

// LineChart generates an SVG line chart with one or more series.
// Labels are optional X-axis labels corresponding to data points.
func LineChart(series []LineSeries, labels []string, cfg ChartConfig) string {
	if len(series) == 0 {
		return emptySVG(cfg, "No data")
	}
	if cfg.Width == 0 {
		cfg = DefaultChartConfig()
	}

	px, py, pw, ph := cfg.plotArea()

	minVal, maxVal := math.MaxFloat64, -math.MaxFloat64
	maxLen := 0
	for _, s := range series {
		if len(s.Values) > maxLen {
			maxLen = len(s.Values)
		}
		for _, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if maxLen == 0 || minVal > maxVal {
		return emptySVG(cfg, "No data points")
	}

	vRange := maxVal - minVal
	if vRange < 0.001 {
		vRange = 1
	}
	minVal -= vRange * 0.05
	vRange *= 1.1

	step := float64(pw)
	if maxLen > 1 {
		step = float64(pw) / float64(maxLen-1)
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	writeBackground(&sb, cfg)
	writeTitle(&sb, cfg)

	// Horizontal grid
	for i := 0; i <= 4; i++ {
		y := py + ph - ph*i/4
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-dasharray="3,3"/>`,
			px, y, px+pw, y, cfg.GridColor))
	}

	for si, s := range series {
		color := s.Color
		if color == "" {
			color = cfg.color(si)
		}

		var parts []string
		for i, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			x := float64(px) + float64(i)*step
			y := float64(py+ph) - (v-minVal)/vRange*float64(ph)
			cmd := "L"
			if len(parts) == 0 {
				cmd = "M"
			}
			parts = append(parts, fmt.Sprintf("%s%.1f,%.1f", cmd, x, y))
		}
		if len(parts) > 1 {
			sb.WriteString(fmt.Sprintf(`<path d="%s" fill="none" stroke="%s" stroke-width="2" data-series="%s"/>`,
				strings.Join(parts, " "), escapeXML(color), escapeXML(s.Name)))
		}
	}

	if len(labels) > 0 {
		interval := maxLen / 6
		if interval < 1 {
			interval = 1
		}
		for i := 0; i < len(labels) && i < maxLen; i += interval {
			x := float64(px) + float64(i)*step
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
				x, py+ph+16, cfg.FontSize-1, cfg.TextColor, escapeXML(labels[i])))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// Bar Chart (Horizontal)
// ════════════════════════════════════════════════════════════════════

// BarItem represents a single bar in a horizontal bar chart.
type BarItem struct {
	Label string
	Value float64
	Color string // optional
}

// HorizontalBarChart generates an SVG horizontal bar chart scaled to the
// largest value. Negative values are drawn as zero-width bars.
func HorizontalBarChart(items []BarItem, cfg ChartConfig) string {
	if len(items) == 0 {
		return emptySVG(cfg, "No data")
	}
	if cfg.Width == 0 {
		cfg = DefaultChartConfig()
	}

	px, py, pw, ph := cfg.plotArea()
	labelW := pw / 3
	barArea := pw - labelW - 40

	maxVal := 0.0
	for _, item := range items {
		maxVal = math.Max(maxVal, item.Value)
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	barH := float64(ph) / float64(len(items)) * 0.7
	if barH > 24 {
		barH = 24
	}
	gap := (float64(ph) - barH*float64(len(items))) / float64(len(items)+1)

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	writeBackground(&sb, cfg)
	writeTitle(&sb, cfg)

	for i, item := range items {
		by := float64(py) + gap + float64(i)*(barH+gap)
		color := item.Color
		if color == "" {
			color = cfg.color(i)
		}
		bw := math.Max(0, item.Value) / maxVal * float64(barArea)
		bx := float64(px + labelW)

		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px+labelW-6, by+barH/2+4, cfg.FontSize, cfg.TextColor, escapeXML(item.Label)))
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="3"/>`,
			bx, by, bw, barH, escapeXML(color)))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" fill="%s">%s</text>`,
			bx+bw+5, by+barH/2+4, cfg.FontSize, cfg.TextColor, utils.FormatCompact(item.Value)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// Gauge
// ════════════════════════════════════════════════════════════════════

// GaugeChart generates an SVG semicircular gauge for a 0-100 value such as
// goal completion. Values outside the range are clamped.
func GaugeChart(value float64, label string, width int) string {
	if width == 0 {
		width = 200
	}
	height := width/2 + 30

	center := geometry.Point{X: float64(width) / 2, Y: float64(width)/2 - 10}
	radius := float64(width)/2 - 20

	value = math.Max(0, math.Min(100, value))

	// Screen space: 180° is the left end, 270° the top, 360° the right end.
	angle := 180 + value/100*180
	start := geometry.PointAt(center, radius, 180)
	end := geometry.PointAt(center, radius, angle)
	needle := geometry.PointAt(center, radius*0.85, angle)
	stop := geometry.PointAt(center, radius, 360)

	var color string
	switch {
	case value < 30:
		color = "#ef5350"
	case value < 50:
		color = "#ff9800"
	case value < 70:
		color = "#ffc107"
	default:
		color = "#4caf50"
	}

	// A gauge never exceeds half a circle, so the large-arc flag stays 0.
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, width, height, width, height))
	sb.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f A%.1f,%.1f 0 0,1 %.1f,%.1f" fill="none" stroke="#e0e0e0" stroke-width="12" stroke-linecap="round"/>`,
		start.X, start.Y, radius, radius, stop.X, stop.Y))
	if value > 0 {
		sb.WriteString(fmt.Sprintf(`<path class="gauge-value" d="M%.1f,%.1f A%.1f,%.1f 0 0,1 %.1f,%.1f" fill="none" stroke="%s" stroke-width="12" stroke-linecap="round"/>`,
			start.X, start.Y, radius, radius, end.X, end.Y, color))
	}
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="2"/>`,
		center.X, center.Y, needle.X, needle.Y))
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="5" fill="#333"/>`, center.X, center.Y))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="22" font-weight="bold" fill="%s" text-anchor="middle">%.0f</text>`,
		center.X, center.Y+25, color, value))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="11" fill="#666" text-anchor="middle">%s</text>`,
		center.X, height-5, escapeXML(label)))
	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// SVG Helpers
// ════════════════════════════════════════════════════════════════════

func svgHeader(cfg ChartConfig) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
}

func writeBackground(sb *strings.Builder, cfg ChartConfig) {
	if cfg.BgColor == "" || cfg.BgColor == "none" {
		return
	}
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
		cfg.Width, cfg.Height, cfg.BgColor))
}

func writeTitle(sb *strings.Builder, cfg ChartConfig) {
	if cfg.Title == "" {
		return
	}
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="20" font-size="14" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
		cfg.Width/2, cfg.TextColor, escapeXML(cfg.Title)))
}

func emptySVG(cfg ChartConfig, msg string) string {
	if cfg.Width == 0 {
		cfg.Width = 400
	}
	if cfg.Height == 0 {
		cfg.Height = 200
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><rect width="%d" height="%d" fill="#f5f5f5"/><text x="%d" y="%d" text-anchor="middle" fill="#999" font-size="14">%s</text></svg>`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height, cfg.Width/2, cfg.Height/2, escapeXML(msg))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

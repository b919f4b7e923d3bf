package chart

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/pageblocks/internal/geometry"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

func trafficSlices() []geometry.Slice {
	return []geometry.Slice{
		{Label: "Direct", Value: 55, Color: "#2563eb"},
		{Label: "Social", Value: 35, Color: "#16a34a"},
		{Label: "Referral", Value: 10, Color: "#ea580c"},
	}
}

// ════════════════════════════════════════════════════════════════════
// Donut / Pie
// ════════════════════════════════════════════════════════════════════

func TestDonutChart_Basic(t *testing.T) {
	opts := DefaultDonutOptions()
	opts.CenterLabel = "12.4k"
	opts.CenterSub = "visits"

	svg, err := DonutChart(trafficSlices(), opts, WidgetConfig(360, 200))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Equal(t, 3, strings.Count(svg, `data-label=`))
	assert.Contains(t, svg, `fill="#2563eb"`)
	assert.Contains(t, svg, `data-percent="55%"`)
	assert.Contains(t, svg, "12.4k")
	assert.Contains(t, svg, "visits")
	assert.Contains(t, svg, `class="legend"`)
}

func TestDonutChart_LegendRoundTrip(t *testing.T) {
	svg, err := DonutChart(trafficSlices(), DefaultDonutOptions(), WidgetConfig(360, 200))
	require.NoError(t, err)

	entries, err := ExtractLegend(svg)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	want := []LegendEntry{
		{Label: "Direct", Color: "#2563eb", Value: 55, Percent: "55%"},
		{Label: "Social", Color: "#16a34a", Value: 35, Percent: "35%"},
		{Label: "Referral", Color: "#ea580c", Value: 10, Percent: "10%"},
	}
	assert.Equal(t, want, entries)
}

func TestDonutChart_PaletteFill(t *testing.T) {
	slices := []geometry.Slice{{Label: "a", Value: 1}, {Label: "b", Value: 2}}
	svg, err := DonutChart(slices, DefaultDonutOptions(), WidgetConfig(360, 200))
	require.NoError(t, err)

	assert.Contains(t, svg, `fill="`+DefaultPalette[0]+`"`)
	assert.Contains(t, svg, `fill="`+DefaultPalette[1]+`"`)
	// Input is not modified.
	assert.Empty(t, slices[0].Color)
}

func TestDonutChart_Degenerate(t *testing.T) {
	slices := []geometry.Slice{{Label: "a", Value: 0}, {Label: "b", Value: 0}}
	svg, err := DonutChart(slices, DefaultDonutOptions(), WidgetConfig(360, 200))

	require.ErrorIs(t, err, geometry.ErrDegenerateInput)
	assert.Contains(t, svg, `class="placeholder"`)
	assert.Contains(t, svg, "No data")
	assert.NotContains(t, svg, "NaN")
}

func TestDonutChart_InvalidSlice(t *testing.T) {
	slices := []geometry.Slice{{Label: "a", Value: 3}, {Label: "b", Value: -1}}
	svg, err := DonutChart(slices, DefaultDonutOptions(), WidgetConfig(360, 200))

	require.ErrorIs(t, err, geometry.ErrInvalidSlice)
	assert.Contains(t, svg, "Invalid chart data")
}

func TestDonutChart_InvalidRatio(t *testing.T) {
	for _, ratio := range []float64{-0.1, 1, 1.5} {
		opts := DefaultDonutOptions()
		opts.InnerRatio = ratio
		_, err := DonutChart(trafficSlices(), opts, WidgetConfig(360, 200))
		assert.ErrorIs(t, err, geometry.ErrInvalidRing, "ratio %v", ratio)
	}
}

func TestDonutChart_TooSmall(t *testing.T) {
	_, err := DonutChart(trafficSlices(), DefaultDonutOptions(), WidgetConfig(100, 100))
	assert.ErrorIs(t, err, ErrPlotTooSmall)
}

func TestDonutChart_ZeroConfig(t *testing.T) {
	svg, err := DonutChart(trafficSlices(), DefaultDonutOptions(), ChartConfig{})
	require.NoError(t, err)
	assert.Contains(t, svg, `width="800"`)
}

func TestDonutChart_EscapesLabels(t *testing.T) {
	slices := []geometry.Slice{{Label: `R&D <"lab">`, Value: 1}}
	svg, err := DonutChart(slices, DefaultDonutOptions(), WidgetConfig(360, 200))
	require.NoError(t, err)
	assert.Contains(t, svg, "R&amp;D &lt;&quot;lab&quot;&gt;")

	entries, err := ExtractLegend(svg)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, `R&D <"lab">`, entries[0].Label)
}

func TestPieChart_NoCenterLabel(t *testing.T) {
	opts := DefaultDonutOptions()
	opts.CenterLabel = "hidden"
	svg, err := PieChart(trafficSlices(), opts, WidgetConfig(360, 200))
	require.NoError(t, err)

	assert.NotContains(t, svg, "hidden")
	assert.Equal(t, 3, strings.Count(svg, `data-label=`))
}

func TestPieChart_SingleSlice(t *testing.T) {
	svg, err := PieChart([]geometry.Slice{{Label: "All", Value: 7}}, DefaultDonutOptions(), WidgetConfig(360, 200))
	require.NoError(t, err)
	// Full circle is drawn as two half arcs.
	assert.Equal(t, 2, strings.Count(svg, " A"))
}

// ════════════════════════════════════════════════════════════════════
// Legend
// ════════════════════════════════════════════════════════════════════

func TestLegend(t *testing.T) {
	arcs, err := geometry.Compute(geometry.NewPie(trafficSlices(), 50))
	require.NoError(t, err)

	entries := Legend(arcs)
	require.Len(t, entries, 3)
	assert.Equal(t, "Direct", entries[0].Label)
	assert.Equal(t, "55%", entries[0].Percent)
	assert.Equal(t, "#ea580c", entries[2].Color)
}

func TestLegendSVG(t *testing.T) {
	out := LegendSVG([]LegendEntry{{Label: "A&B", Color: "#000", Percent: "50%"}}, 10, 20, DefaultChartConfig())
	assert.True(t, strings.HasPrefix(out, `<g class="legend">`))
	assert.Contains(t, out, "A&amp;B")
	assert.Contains(t, out, "50%")
}

func TestExtractLegend_FromHTMLPage(t *testing.T) {
	svg, err := DonutChart(trafficSlices(), DefaultDonutOptions(), WidgetConfig(360, 200))
	require.NoError(t, err)

	page := "<!DOCTYPE html><html><body><section><h2>Traffic</h2>" + svg + "</section></body></html>"
	entries, err := ExtractLegend(page)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestExtractLegend_BadValue(t *testing.T) {
	_, err := ExtractLegend(`<svg><path data-label="x" data-value="abc"/></svg>`)
	assert.Error(t, err)
}

func TestExtractLegend_NoCharts(t *testing.T) {
	entries, err := ExtractLegend("<p>nothing here</p>")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// ════════════════════════════════════════════════════════════════════
// Line / Bar / Gauge
// ════════════════════════════════════════════════════════════════════

func TestLineChart_Basic(t *testing.T) {
	series := []LineSeries{
		{Name: "Revenue", Values: []float64{10, 12, 9, 15, 18, 21}},
		{Name: "Target", Values: []float64{11, 11, 12, 13, 14, 15}, Color: "#000000"},
	}
	labels := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}
	svg := LineChart(series, labels, DefaultChartConfig())

	assert.Equal(t, 2, strings.Count(svg, "data-series="))
	assert.Contains(t, svg, `stroke="#000000"`)
	assert.Contains(t, svg, "Jan")
}

func TestLineChart_Empty(t *testing.T) {
	svg := LineChart(nil, nil, DefaultChartConfig())
	assert.Contains(t, svg, "No data")
}

func TestLineChart_AllNaN(t *testing.T) {
	svg := LineChart([]LineSeries{{Name: "x", Values: []float64{math.NaN(), math.NaN()}}}, nil, DefaultChartConfig())
	assert.Contains(t, svg, "No data points")
}

func TestLineChart_SkipsNaN(t *testing.T) {
	svg := LineChart([]LineSeries{{Name: "x", Values: []float64{1, math.NaN(), 3}}}, nil, DefaultChartConfig())
	assert.NotContains(t, svg, "NaN")
}

func TestHorizontalBarChart_Basic(t *testing.T) {
	items := []BarItem{
		{Label: "Sneakers", Value: 1200},
		{Label: "Backpack", Value: 800},
		{Label: "Returned", Value: -5},
	}
	svg := HorizontalBarChart(items, DefaultChartConfig())

	assert.Contains(t, svg, "Sneakers")
	assert.Contains(t, svg, "1.2k")
	assert.Equal(t, 3, strings.Count(svg, `rx="3"`))
	assert.Contains(t, svg, `width="0.0"`)
}

func TestHorizontalBarChart_Empty(t *testing.T) {
	assert.Contains(t, HorizontalBarChart(nil, DefaultChartConfig()), "No data")
}

func TestGaugeChart_Values(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		label string
		arc   bool
	}{
		{"low", 15, "Low", true},
		{"medium", 55, "Medium", true},
		{"high", 85, "High", true},
		{"clamped_zero", -10, "Below Zero", false},
		{"clamped_max", 150, "Above Max", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := GaugeChart(tt.value, tt.label, 200)
			assert.Contains(t, svg, "<svg")
			assert.Contains(t, svg, tt.label)
			assert.Equal(t, tt.arc, strings.Contains(svg, `class="gauge-value"`))
		})
	}
}

func TestGaugeChart_FullValueEndsRight(t *testing.T) {
	svg := GaugeChart(100, "Done", 200)
	// radius 80 around (100, 90): the value arc ends at the right edge.
	assert.Contains(t, svg, `A80.0,80.0 0 0,1 180.0,90.0" fill="none" stroke="#4caf50"`)
}

func TestGaugeChart_ZeroWidth(t *testing.T) {
	assert.Contains(t, GaugeChart(50, "Test", 0), `width="200"`)
}

// ════════════════════════════════════════════════════════════════════
// Helpers
// ════════════════════════════════════════════════════════════════════

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"plain", "plain"},
		{"a & b", "a &amp; b"},
		{"<tag>", "&lt;tag&gt;"},
		{`"quoted"`, "&quot;quoted&quot;"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeXML(tt.input))
	}
}

func TestPlotArea(t *testing.T) {
	x, y, w, h := DefaultChartConfig().plotArea()
	assert.Equal(t, 70, x)
	assert.Equal(t, 40, y)
	assert.Equal(t, 670, w)
	assert.Equal(t, 310, h)
}

func TestWidgetConfig(t *testing.T) {
	cfg := WidgetConfig(300, 150)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 8, cfg.MarginLeft)
	assert.Equal(t, "none", cfg.BgColor)
	assert.Empty(t, cfg.Title)
}

func TestEmptySVG(t *testing.T) {
	svg := emptySVG(ChartConfig{}, "Nothing <here>")
	assert.Contains(t, svg, `width="400"`)
	assert.Contains(t, svg, "Nothing &lt;here&gt;")
}

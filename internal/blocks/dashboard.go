package blocks

import (
	"errors"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"github.com/seenimoa/pageblocks/internal/chart"
	"github.com/seenimoa/pageblocks/internal/geometry"
	"github.com/seenimoa/pageblocks/pkg/utils"
)

const (
	widgetWidth  = 360
	widgetHeight = 200
)

func dashboardBlocks() []Block {
	return []Block{
		{
			Name:        "stats-cards",
			Title:       "Stats cards",
			Category:    CategoryDashboard,
			Description: "Headline metrics with period-over-period change.",
			Render:      static(statsCards),
		},
		{
			Name:        "traffic-sources-donut",
			Title:       "Traffic sources donut",
			Category:    CategoryDashboard,
			Description: "Donut chart of visits by source with a legend.",
			Render:      trafficSourcesDonut,
		},
		{
			Name:        "device-share-pie",
			Title:       "Device share pie",
			Category:    CategoryDashboard,
			Description: "Pie chart of sessions by device.",
			Render:      deviceSharePie,
		},
		{
			Name:        "revenue-trend",
			Title:       "Revenue trend",
			Category:    CategoryDashboard,
			Description: "Monthly revenue against target.",
			Render:      static(revenueTrend),
		},
		{
			Name:        "top-products",
			Title:       "Top products",
			Category:    CategoryDashboard,
			Description: "Units sold per product as horizontal bars.",
			Render:      static(topProducts),
		},
		{
			Name:        "goal-gauge",
			Title:       "Goal gauge",
			Category:    CategoryDashboard,
			Description: "Progress toward the quarterly goal.",
			Render:      static(goalGauge),
		},
		{
			Name:        "empty-donut",
			Title:       "Empty donut",
			Category:    CategoryDashboard,
			Description: "Donut widget with no data yet.",
			Render:      emptyDonut,
		},
	}
}

// chartWidget wraps rendered SVG in a card. A degenerate data set keeps
// the placeholder markup the chart package returned; any other error fails.
func chartWidget(title, svg string, err error) (g.Node, error) {
	if err != nil && !errors.Is(err, geometry.ErrDegenerateInput) {
		return nil, err
	}
	return Card(title, h.Div(
		c.Classes{"chart": true, "chart-empty": err != nil},
		g.Raw(svg),
	)), nil
}

func statsCards() g.Node {
	return h.Div(
		h.Class("grid grid-4 stats"),
		g.Group(g.Map(stats, func(s stat) g.Node {
			tone := "success"
			if s.Change < 0 {
				tone = "danger"
			}
			return Card(s.Label, h.Div(
				h.P(h.Class("stat-value"), g.Text(formatStat(s))),
				Badge(utils.FormatChange(s.Change), tone),
			))
		})),
	)
}

func formatStat(s stat) string {
	switch s.Unit {
	case "$":
		return utils.FormatUSD(s.Value)
	case "%":
		return utils.FormatPercent(s.Value, 1)
	default:
		return utils.FormatCompact(s.Value)
	}
}

func trafficSourcesDonut() (g.Node, error) {
	opts := chart.DefaultDonutOptions()
	opts.CenterLabel = utils.FormatCompact(geometry.Total(trafficSources))
	opts.CenterSub = "visits"
	svg, err := chart.DonutChart(trafficSources, opts, chart.WidgetConfig(widgetWidth, widgetHeight))
	return chartWidget("Traffic sources", svg, err)
}

func deviceSharePie() (g.Node, error) {
	svg, err := chart.PieChart(deviceShare, chart.DefaultDonutOptions(), chart.WidgetConfig(widgetWidth, widgetHeight))
	return chartWidget("Sessions by device", svg, err)
}

func emptyDonut() (g.Node, error) {
	svg, err := chart.DonutChart(emptySlices, chart.DefaultDonutOptions(), chart.WidgetConfig(widgetWidth, widgetHeight))
	return chartWidget("Traffic sources", svg, err)
}

func revenueTrend() g.Node {
	cfg := chart.DefaultChartConfig()
	cfg.Width = 640
	cfg.Height = 280
	cfg.Title = "Revenue (k$)"
	return Card("Revenue trend", h.Div(h.Class("chart"), g.Raw(chart.LineChart(revenueSeries, revenueMonths, cfg))))
}

func topProducts() g.Node {
	items := make([]chart.BarItem, len(products))
	for i, p := range products {
		items[i] = chart.BarItem{Label: p.Name, Value: p.Sold}
	}
	cfg := chart.DefaultChartConfig()
	cfg.Width = 640
	cfg.Height = 300
	cfg.MarginLeft = 120
	return Card("Top products", h.Div(h.Class("chart"), g.Raw(chart.HorizontalBarChart(items, cfg))))
}

func goalGauge() g.Node {
	return Card("Quarterly goal", h.Div(
		h.Class("chart chart-gauge"),
		g.Raw(chart.GaugeChart(goalProgress, "of target", 240)),
		h.P(h.Class("pb-muted"), g.Textf("%s reached", utils.FormatPercent(goalProgress/100, 1))),
	))
}

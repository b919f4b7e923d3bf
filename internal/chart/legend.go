package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/pageblocks/internal/geometry"
	"github.com/seenimoa/pageblocks/pkg/utils"
)

const legendRowHeight = 18

// LegendEntry is one row of a chart legend.
type LegendEntry struct {
	Label   string  `json:"label"`
	Color   string  `json:"color"`
	Value   float64 `json:"value"`
	Percent string  `json:"percent"`
}

// Legend builds legend rows from computed arcs, in arc order.
func Legend(arcs []geometry.ArcPath) []LegendEntry {
	entries := make([]LegendEntry, len(arcs))
	for i, a := range arcs {
		entries[i] = LegendEntry{
			Label:   a.Label,
			Color:   a.Color,
			Value:   a.Value,
			Percent: utils.FormatPercent(a.Fraction, 1),
		}
	}
	return entries
}

// LegendSVG renders entries as a column of swatches starting at (x, y).
// The result is a <g> fragment meant to be placed inside an <svg>.
func LegendSVG(entries []LegendEntry, x, y int, cfg ChartConfig) string {
	var sb strings.Builder
	sb.WriteString(`<g class="legend">`)
	for i, e := range entries {
		ry := y + i*legendRowHeight
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="10" height="10" rx="2" fill="%s"/>`,
			x, ry, escapeXML(e.Color)))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s">%s <tspan fill="#6b7280">%s</tspan></text>`,
			x+16, ry+9, cfg.FontSize, cfg.TextColor, escapeXML(e.Label), e.Percent))
	}
	sb.WriteString(`</g>`)
	return sb.String()
}

// ExtractLegend recovers legend rows from rendered markup (a standalone SVG
// or an HTML page embedding one) by reading the data attributes DonutChart
// writes on every slice path. Paths from all charts in the document are
// returned in document order.
func ExtractLegend(markup string) ([]LegendEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	var entries []LegendEntry
	var parseErr error
	doc.Find("path[data-label]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		e := LegendEntry{
			Label:   s.AttrOr("data-label", ""),
			Color:   s.AttrOr("fill", ""),
			Percent: s.AttrOr("data-percent", ""),
		}
		if raw, ok := s.Attr("data-value"); ok {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				parseErr = fmt.Errorf("slice %d (%q): bad data-value %q: %w", i, e.Label, raw, err)
				return false
			}
			e.Value = v
		}
		entries = append(entries, e)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return entries, nil
}

package blocks

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/seenimoa/pageblocks/internal/chart"
	"github.com/seenimoa/pageblocks/internal/geometry"
)

//go:embed sampledata/posts.xml
var postsFeed []byte

// Post is one entry of the sample journal feed.
type Post struct {
	Title     string
	Link      string
	Summary   string
	Category  string
	Published time.Time
}

// LoadPosts parses an RSS or Atom document into posts, newest first as
// ordered in the document. At most limit posts are returned when limit > 0.
func LoadPosts(data []byte, limit int) ([]Post, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	posts := make([]Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		p := Post{
			Title:   item.Title,
			Link:    item.Link,
			Summary: item.Description,
		}
		if p.Summary == "" {
			p.Summary = item.Content
		}
		if len(item.Categories) > 0 {
			p.Category = item.Categories[0]
		}
		switch {
		case item.PublishedParsed != nil:
			p.Published = *item.PublishedParsed
		case item.UpdatedParsed != nil:
			p.Published = *item.UpdatedParsed
		}
		posts = append(posts, p)
		if limit > 0 && len(posts) == limit {
			break
		}
	}
	return posts, nil
}

// ── Marketing ──

type feature struct {
	Title string
	Body  string
	Icon  string
}

var features = []feature{
	{"Composable", "Every block is a function returning a node tree. Nest them freely.", "◇"},
	{"Server rendered", "HTML is produced on the server. No client runtime is required.", "▣"},
	{"Chart widgets", "Donut, pie, line, bar and gauge charts ship as inline SVG.", "◔"},
	{"Exportable", "Write the whole catalog to static files with one command.", "⇩"},
	{"Accessible", "Labels, titles and landmarks are part of every block.", "◎"},
	{"Themeable", "Blocks use class names only. Bring your own stylesheet.", "◐"},
}

type tier struct {
	Name      string
	Price     float64
	Period    string
	Perks     []string
	Highlight bool
}

var tiers = []tier{
	{"Starter", 0, "month", []string{"10 blocks", "Community support"}, false},
	{"Team", 29, "month", []string{"All blocks", "Chart widgets", "Static export"}, true},
	{"Agency", 99, "month", []string{"Everything in Team", "White labelling", "Priority support"}, false},
}

type testimonial struct {
	Quote  string
	Author string
	Role   string
}

var testimonials = []testimonial{
	{"We rebuilt our landing page in an afternoon.", "Priya Raman", "Head of Growth, Northwind"},
	{"The donut chart finally starts at twelve o'clock.", "Jonas Weber", "Data Lead, Fabrikam"},
	{"Exported the catalog and dropped it on our CDN.", "Ayo Adeyemi", "Engineer, Tailspin"},
	{"Our designers and developers share one vocabulary now.", "Lucía Ortega", "Design Manager, Contoso"},
}

// ── Ecommerce ──

type product struct {
	SKU    string
	Name   string
	Price  float64
	Rating float64
	Badge  string
	Sold   float64
}

var products = []product{
	{"SNK-01", "Trail Sneakers", 119, 4.7, "Bestseller", 1240},
	{"BAG-02", "Canvas Backpack", 79, 4.5, "", 860},
	{"BTL-03", "Steel Bottle", 24, 4.8, "New", 2310},
	{"JKT-04", "Rain Jacket", 149, 4.3, "", 410},
	{"CAP-05", "Wool Cap", 19, 4.1, "Sale", 1580},
	{"SCK-06", "Merino Socks", 15, 4.6, "", 2970},
}

type lineItem struct {
	Name     string
	Qty      int
	Price    float64
	Discount float64
}

var cart = []lineItem{
	{"Trail Sneakers", 1, 119, 0},
	{"Merino Socks", 3, 15, 5},
	{"Steel Bottle", 2, 24, 0},
}

const (
	shippingFlat = 6.50
	taxRate      = 0.08
)

// ── Dashboard ──

type stat struct {
	Label  string
	Value  float64
	Unit   string
	Change float64
}

var stats = []stat{
	{"Revenue", 48250, "$", 12.4},
	{"Visits", 12400, "", 3.1},
	{"Orders", 842, "", -2.6},
	{"Conversion", 0.068, "%", 0.4},
}

var trafficSources = []geometry.Slice{
	{Label: "Direct", Value: 55, Color: "#2563eb"},
	{Label: "Social", Value: 35, Color: "#16a34a"},
	{Label: "Referral", Value: 10, Color: "#ea580c"},
}

var deviceShare = []geometry.Slice{
	{Label: "Mobile", Value: 6120},
	{Label: "Desktop", Value: 4870},
	{Label: "Tablet", Value: 1410},
}

var emptySlices = []geometry.Slice{
	{Label: "Direct", Value: 0},
	{Label: "Social", Value: 0},
	{Label: "Referral", Value: 0},
}

var revenueMonths = []string{"Apr", "May", "Jun", "Jul", "Aug", "Sep"}

var revenueSeries = []chart.LineSeries{
	{Name: "Revenue", Values: []float64{31.2, 34.8, 33.1, 39.6, 44.0, 48.3}},
	{Name: "Target", Values: []float64{32, 34, 36, 38, 40, 42}, Color: "#9ca3af"},
}

const goalProgress = 72.5

// ── Portfolio ──

type project struct {
	Title string
	Year  int
	Tags  []string
	Color string
}

var projects = []project{
	{"Northwind rebrand", 2026, []string{"identity", "web"}, "#2563eb"},
	{"Fabrikam analytics", 2026, []string{"dashboard", "charts"}, "#16a34a"},
	{"Tailspin checkout", 2025, []string{"ecommerce"}, "#ea580c"},
	{"Contoso field guide", 2025, []string{"editorial", "print"}, "#9333ea"},
}

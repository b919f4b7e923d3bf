package blocks

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"github.com/seenimoa/pageblocks/pkg/utils"
)

func marketingBlocks() []Block {
	return []Block{
		{
			Name:        "hero-centered",
			Title:       "Centered hero",
			Category:    CategoryMarketing,
			Description: "Headline, lead and two calls to action, centered.",
			Render:      static(heroCentered),
		},
		{
			Name:        "feature-grid",
			Title:       "Feature grid",
			Category:    CategoryMarketing,
			Description: "Six features in a responsive grid of cards.",
			Render:      static(featureGrid),
		},
		{
			Name:        "pricing-tiers",
			Title:       "Pricing tiers",
			Category:    CategoryMarketing,
			Description: "Three plans with the middle one highlighted.",
			Render:      static(pricingTiers),
		},
		{
			Name:        "testimonial-wall",
			Title:       "Testimonial wall",
			Category:    CategoryMarketing,
			Description: "Customer quotes with avatars.",
			Render:      static(testimonialWall),
		},
		{
			Name:        "cta-banner",
			Title:       "Call-to-action banner",
			Category:    CategoryMarketing,
			Description: "Full-width banner closing a landing page.",
			Render:      static(ctaBanner),
		},
	}
}

// static adapts a render func that cannot fail.
func static(fn func() g.Node) func() (g.Node, error) {
	return func() (g.Node, error) { return fn(), nil }
}

func heroCentered() g.Node {
	return h.Div(
		h.Class("hero hero-centered"),
		h.ID("hero"),
		h.Div(
			h.Class("hero-inner"),
			Badge("New: chart widgets", "accent"),
			h.H1(h.Class("hero-title"), g.Text("Ship pages from blocks, not from scratch")),
			h.P(h.Class("hero-lead"), g.Text("A catalog of server-rendered sections for landing pages, stores, dashboards and portfolios.")),
			h.Div(
				h.Class("hero-actions"),
				Button(ButtonProps{Label: "Browse blocks", Href: "#catalog"}),
				Button(ButtonProps{Label: "Read the docs", Href: "#docs", Variant: VariantGhost}),
			),
		),
	)
}

func featureGrid() g.Node {
	return Section("features", "Everything a page needs", "Pick the blocks, keep your stylesheet.",
		h.Div(
			h.Class("grid grid-3"),
			g.Group(g.Map(features, func(f feature) g.Node {
				return Card(f.Title, h.Div(
					h.Span(h.Class("feature-icon"), g.Attr("aria-hidden", "true"), g.Text(f.Icon)),
					h.P(g.Text(f.Body)),
				))
			})),
		),
	)
}

func pricingTiers() g.Node {
	return Section("pricing", "Simple pricing", "Every plan includes every update.",
		h.Div(
			h.Class("grid grid-3 pricing"),
			g.Group(g.Map(tiers, func(t tier) g.Node {
				price := "Free"
				if t.Price > 0 {
					price = utils.FormatUSD(t.Price)
				}
				return h.Div(
					c.Classes{"tier": true, "tier-highlight": t.Highlight},
					Card(t.Name,
						h.Div(
							g.If(t.Highlight, Badge("Most popular", "accent")),
							h.P(h.Class("tier-price"), g.Text(price), h.Span(h.Class("pb-muted"), g.Text(" / "+t.Period))),
							h.Ul(g.Group(g.Map(t.Perks, func(p string) g.Node { return h.Li(g.Text(p)) }))),
						),
						Button(ButtonProps{Label: "Choose " + t.Name, Href: "#signup", Variant: tierVariant(t)}),
					),
				)
			})),
		),
	)
}

func tierVariant(t tier) string {
	if t.Highlight {
		return VariantPrimary
	}
	return VariantSecondary
}

func testimonialWall() g.Node {
	return Section("testimonials", "Loved by teams", "",
		h.Div(
			h.Class("grid grid-2"),
			g.Group(g.Map(testimonials, func(t testimonial) g.Node {
				return h.Figure(
					h.Class("testimonial"),
					h.BlockQuote(h.P(g.Text(t.Quote))),
					h.FigCaption(
						Avatar(t.Author, ""),
						h.Strong(g.Text(t.Author)),
						h.Span(h.Class("pb-muted"), g.Text(t.Role)),
					),
				)
			})),
		),
	)
}

func ctaBanner() g.Node {
	return h.Div(
		h.Class("cta-banner"),
		h.H2(g.Text("Ready to build your next page?")),
		h.P(g.Text("Export the catalog and start composing in minutes.")),
		Button(ButtonProps{Label: "Get started", Href: "#signup"}),
	)
}

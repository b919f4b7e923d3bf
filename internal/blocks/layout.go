package blocks

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// PageConfig controls the document wrapper written by RenderPage.
type PageConfig struct {
	Title       string
	Description string
	Theme       string
	Stylesheet  string
}

// Layout wraps content in a complete HTML document.
func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "pageblocks"
	}
	if config.Description == "" {
		config.Description = "Prebuilt page blocks and chart widgets."
	}
	if config.Theme == "" {
		config.Theme = "light"
	}
	if config.Stylesheet == "" {
		config.Stylesheet = "/static/preview.css"
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		h.HTML(
			h.Lang("en"),
			g.Attr("data-theme", config.Theme),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1.0")),
				h.TitleEl(g.Text(config.Title)),
				h.Meta(h.Name("description"), h.Content(config.Description)),
				h.Link(h.Rel("stylesheet"), h.Href(config.Stylesheet)),
			),
			h.Body(
				h.Class("pb-body"),
				h.Main(h.Class("pb-main"), g.Group(content)),
			),
		),
	})
}

func blockFrame(b Block, content g.Node) g.Node {
	return h.Div(
		h.Class("pb-block"),
		g.Attr("data-block", b.Name),
		g.Attr("data-category", b.Category),
		content,
	)
}

func indexBody(c *Catalog, linkFor func(string) string) g.Node {
	return h.Div(
		h.Class("pb-index"),
		h.H1(g.Text("Block catalog")),
		h.P(h.Class("pb-muted"), g.Textf("%d blocks", c.Len())),
		g.Group(g.Map(c.Categories(), func(category string) g.Node {
			return h.Section(
				h.Class("pb-index-group"),
				h.ID(category),
				h.H2(g.Text(category)),
				h.Ul(
					g.Group(g.Map(c.ByCategory(category), func(b Block) g.Node {
						return h.Li(
							h.A(h.Href(linkFor(b.Name)), g.Text(b.Title)),
							h.Span(h.Class("pb-muted"), g.Text(" "+b.Description)),
						)
					})),
				),
			)
		})),
	)
}

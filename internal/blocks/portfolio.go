package blocks

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/seenimoa/pageblocks/pkg/utils"
)

const latestPostsLimit = 3

func portfolioBlocks() []Block {
	return []Block{
		{
			Name:        "project-gallery",
			Title:       "Project gallery",
			Category:    CategoryPortfolio,
			Description: "Selected work as tagged tiles.",
			Render:      static(projectGallery),
		},
		{
			Name:        "latest-posts",
			Title:       "Latest posts",
			Category:    CategoryPortfolio,
			Description: "Most recent journal entries from an Atom feed.",
			Render:      latestPosts,
		},
	}
}

func projectGallery() g.Node {
	return Section("work", "Selected work", "",
		h.Div(
			h.Class("grid grid-2 gallery"),
			g.Group(g.Map(projects, func(p project) g.Node {
				return h.Figure(
					h.Class("gallery-tile"),
					h.Div(
						h.Class("gallery-cover"),
						h.Style("background-color: "+p.Color),
						g.Attr("aria-hidden", "true"),
					),
					h.FigCaption(
						h.Strong(g.Text(p.Title)),
						h.Span(h.Class("pb-muted"), g.Text(" "+strconv.Itoa(p.Year))),
						h.Div(g.Group(g.Map(p.Tags, func(tag string) g.Node { return Badge(tag, "neutral") }))),
					),
				)
			})),
		),
	)
}

func latestPosts() (g.Node, error) {
	posts, err := LoadPosts(postsFeed, latestPostsLimit)
	if err != nil {
		return nil, fmt.Errorf("latest posts: %w", err)
	}
	return Section("journal", "From the journal", "",
		h.Div(
			h.Class("grid grid-3 posts"),
			g.Group(g.Map(posts, func(p Post) g.Node {
				return h.Article(
					h.Class("post"),
					Card("",
						h.Div(
							g.If(p.Category != "", Badge(p.Category, "neutral")),
							h.H3(h.A(h.Href(p.Link), g.Text(p.Title))),
							h.P(g.Text(p.Summary)),
							h.Time(g.Attr("datetime", utils.FormatISODate(p.Published)), g.Text(utils.FormatDate(p.Published))),
						),
					),
				)
			})),
		),
	), nil
}

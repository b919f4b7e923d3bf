package blocks

import (
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Button variants.
const (
	VariantPrimary   = "primary"
	VariantSecondary = "secondary"
	VariantGhost     = "ghost"
)

// ButtonProps configures Button. A non-empty Href renders a link.
type ButtonProps struct {
	Label   string
	Href    string
	Variant string
	Type    string
}

// Button renders a styled button or link.
func Button(p ButtonProps) g.Node {
	if p.Variant == "" {
		p.Variant = VariantPrimary
	}
	class := h.Class("btn btn-" + p.Variant)
	if p.Href != "" {
		return h.A(class, h.Href(p.Href), g.Text(p.Label))
	}
	if p.Type == "" {
		p.Type = "button"
	}
	return h.Button(class, h.Type(p.Type), g.Text(p.Label))
}

// Card renders a bordered container with an optional title and footer.
func Card(title string, body g.Node, footer ...g.Node) g.Node {
	return h.Div(
		h.Class("card"),
		g.If(title != "", h.H3(h.Class("card-title"), g.Text(title))),
		h.Div(h.Class("card-body"), body),
		g.If(len(footer) > 0, h.Div(h.Class("card-footer"), g.Group(footer))),
	)
}

// Badge renders a small pill. tone picks the color class.
func Badge(label, tone string) g.Node {
	if tone == "" {
		tone = "neutral"
	}
	return h.Span(h.Class("badge badge-"+tone), g.Text(label))
}

// Avatar renders an image, or initials when src is empty.
func Avatar(name, src string) g.Node {
	if src != "" {
		return h.Img(h.Class("avatar"), h.Src(src), h.Alt(name))
	}
	return h.Span(
		h.Class("avatar avatar-initials"),
		g.Attr("aria-label", name),
		g.Text(initials(name)),
	)
}

// InputProps configures Input.
type InputProps struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
	Required    bool
}

// Input renders a labelled form field.
func Input(p InputProps) g.Node {
	if p.Type == "" {
		p.Type = "text"
	}
	id := "field-" + p.Name
	return h.Div(
		h.Class("field"),
		h.Label(h.For(id), g.Text(p.Label)),
		h.Input(
			h.ID(id),
			h.Name(p.Name),
			h.Type(p.Type),
			g.If(p.Placeholder != "", h.Placeholder(p.Placeholder)),
			g.If(p.Required, h.Required()),
		),
	)
}

// Section renders a titled page section with an optional lead paragraph.
func Section(id, heading, lead string, children ...g.Node) g.Node {
	return h.Section(
		h.Class("pb-section"),
		g.If(id != "", h.ID(id)),
		g.If(heading != "", h.H2(h.Class("pb-heading"), g.Text(heading))),
		g.If(lead != "", h.P(h.Class("pb-lead"), g.Text(lead))),
		g.Group(children),
	)
}

func initials(name string) string {
	var sb strings.Builder
	for _, part := range strings.Fields(name) {
		for _, r := range part {
			sb.WriteRune(r)
			break
		}
		if sb.Len() >= 2 {
			break
		}
	}
	return strings.ToUpper(sb.String())
}

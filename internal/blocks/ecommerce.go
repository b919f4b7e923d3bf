package blocks

import (
	"fmt"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/seenimoa/pageblocks/pkg/utils"
)

func ecommerceBlocks() []Block {
	return []Block{
		{
			Name:        "product-grid",
			Title:       "Product grid",
			Category:    CategoryEcommerce,
			Description: "Product cards with price, rating and badges.",
			Render:      static(productGrid),
		},
		{
			Name:        "checkout-summary",
			Title:       "Checkout summary",
			Category:    CategoryEcommerce,
			Description: "Line items with subtotal, shipping, tax and total.",
			Render:      static(checkoutSummary),
		},
		{
			Name:        "checkout-form",
			Title:       "Checkout form",
			Category:    CategoryEcommerce,
			Description: "Contact, shipping and payment fields.",
			Render:      static(checkoutForm),
		},
	}
}

func productGrid() g.Node {
	return Section("products", "Shop the collection", "",
		h.Div(
			h.Class("grid grid-3"),
			g.Group(g.Map(products, func(p product) g.Node {
				return h.Article(
					h.Class("product"),
					g.Attr("data-sku", p.SKU),
					h.Div(h.Class("product-media"), g.Attr("aria-hidden", "true")),
					Card(p.Name,
						h.Div(
							g.If(p.Badge != "", Badge(p.Badge, "accent")),
							h.P(h.Class("product-price"), g.Text(utils.FormatUSD(p.Price))),
							h.P(h.Class("pb-muted"), g.Textf("★ %.1f", p.Rating)),
						),
						Button(ButtonProps{Label: "Add to cart", Type: "button"}),
					),
				)
			})),
		),
	)
}

// cartTotals returns subtotal, shipping, tax and grand total for items.
func cartTotals(items []lineItem) (subtotal, shipping, tax, total float64) {
	for _, it := range items {
		subtotal += float64(it.Qty)*it.Price - it.Discount
	}
	if len(items) > 0 {
		shipping = shippingFlat
	}
	tax = subtotal * taxRate
	total = subtotal + shipping + tax
	return subtotal, shipping, tax, total
}

func checkoutSummary() g.Node {
	subtotal, shipping, tax, total := cartTotals(cart)
	return Card("Order summary",
		h.Table(
			h.Class("summary"),
			h.TBody(
				g.Group(g.Map(cart, func(it lineItem) g.Node {
					label := fmt.Sprintf("%s × %d", it.Name, it.Qty)
					return h.Tr(
						h.Td(g.Text(label), g.If(it.Discount > 0, Badge("-"+utils.FormatUSD(it.Discount), "success"))),
						h.Td(h.Class("num"), g.Text(utils.FormatUSD(float64(it.Qty)*it.Price-it.Discount))),
					)
				})),
			),
			h.TFoot(
				summaryRow("Subtotal", subtotal, ""),
				summaryRow("Shipping", shipping, ""),
				summaryRow(fmt.Sprintf("Tax (%s)", utils.FormatPercent(taxRate, 1)), tax, ""),
				summaryRow("Total", total, "summary-total"),
			),
		),
		Button(ButtonProps{Label: "Place order", Type: "submit"}),
	)
}

func summaryRow(label string, amount float64, class string) g.Node {
	return h.Tr(
		g.If(class != "", h.Class(class)),
		h.Th(g.Attr("scope", "row"), g.Text(label)),
		h.Td(h.Class("num"), g.Text(utils.FormatUSD(amount))),
	)
}

func checkoutForm() g.Node {
	return h.Form(
		h.Class("checkout-form"),
		h.Method("post"),
		h.Action("#checkout"),
		h.FieldSet(
			h.Legend(g.Text("Contact")),
			Input(InputProps{Name: "email", Label: "Email", Type: "email", Placeholder: "you@example.com", Required: true}),
		),
		h.FieldSet(
			h.Legend(g.Text("Shipping")),
			Input(InputProps{Name: "name", Label: "Full name", Required: true}),
			Input(InputProps{Name: "address", Label: "Address", Required: true}),
			Input(InputProps{Name: "postcode", Label: "Postcode", Required: true}),
		),
		h.FieldSet(
			h.Legend(g.Text("Payment")),
			Input(InputProps{Name: "card", Label: "Card number", Placeholder: "4242 4242 4242 4242", Required: true}),
			Input(InputProps{Name: "expiry", Label: "Expiry", Placeholder: "MM/YY", Required: true}),
		),
		Button(ButtonProps{Label: "Pay now", Type: "submit"}),
	)
}

package cart

import (
	"fmt"
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/dame6k/beatstore/pkg/common"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	EmptyText = "Tu carrito esta vacio."

	// es-AR writes dollars as "US$".
	usdSymbol = "US$"
)

var locale = language.MustParse("es-AR")

// Line is one rendered cart line.
type Line struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	TypeLabel     string  `json:"typeLabel"`
	Cover         string  `json:"cover,omitempty"`
	CoverAlt      string  `json:"coverAlt,omitempty"`
	Placeholder   string  `json:"placeholder,omitempty"`
	Meta          string  `json:"meta,omitempty"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	Subtotal      float64 `json:"subtotal"`
	UnitLabel     string  `json:"unitLabel"`
	QuantityLabel string  `json:"quantityLabel"`
	SubtotalLabel string  `json:"subtotalLabel"`
	RemoveLabel   string  `json:"removeLabel"`
}

// View is the rendered drawer and navbar badge.
type View struct {
	Lines           []Line  `json:"lines"`
	Count           int     `json:"count"`
	Total           float64 `json:"total"`
	TotalLabel      string  `json:"totalLabel"`
	Empty           bool    `json:"empty"`
	EmptyText       string  `json:"emptyText"`
	ClearEnabled    bool    `json:"clearEnabled"`
	CheckoutEnabled bool    `json:"checkoutEnabled"`
	Open            bool    `json:"open"`
}

// FormatCurrency renders a USD amount for the es-AR locale with two
// decimals, "US$ 1.234,50". Non-finite amounts render as "$0.00".
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0.00"
	}
	scale, _ := currency.Standard.Rounding(currency.USD)
	p := message.NewPrinter(locale)
	return usdSymbol + " " + p.Sprintf("%.*f", scale, v)
}

// Render rebuilds the view from the current lines and drawer state.
func (c *Cart) Render() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := View{
		Lines:     make([]Line, 0, len(c.items)),
		Empty:     len(c.items) == 0,
		EmptyText: EmptyText,
		Open:      c.open,
	}
	for _, it := range c.items {
		line := Line{
			ID:            it.ID,
			Title:         it.Title,
			Type:          it.Type,
			TypeLabel:     common.IfEmptyStr(common.Capitalize(it.Type), DefaultTitle),
			Cover:         it.Cover,
			Meta:          it.Meta,
			Price:         it.Price,
			Quantity:      it.Quantity,
			Subtotal:      it.Subtotal(),
			UnitLabel:     FormatCurrency(it.Price) + " c/u",
			QuantityLabel: fmt.Sprintf("x%d", it.Quantity),
			SubtotalLabel: FormatCurrency(it.Subtotal()),
			RemoveLabel:   "Eliminar " + it.Title,
		}
		if it.Cover != "" {
			line.CoverAlt = "Portada de " + it.Title
		} else {
			line.Placeholder = initial(it.Title)
		}
		view.Lines = append(view.Lines, line)
		view.Count += it.Quantity
		view.Total += line.Subtotal
	}
	view.TotalLabel = FormatCurrency(view.Total)
	view.ClearEnabled = !view.Empty
	view.CheckoutEnabled = !view.Empty

	c.view = view
	return view
}

// View returns the last rendering.
func (c *Cart) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

func initial(title string) string {
	r, _ := utf8.DecodeRuneInString(title)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

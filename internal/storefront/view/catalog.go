package view

import (
	"strings"
	"text/template"

	"github.com/nazeru/larek-storefront-go/internal/storefront/contracts"
	"github.com/nazeru/larek-storefront-go/internal/storefront/domain"
	"github.com/nazeru/larek-storefront-go/pkg/events"
)

// Catalog renders the product list plus the page header and emits selection
// intents. Cursor position is view-local interaction state.
type Catalog struct {
	bus     *events.Bus
	pageTpl *template.Template
	cardTpl *template.Template

	products []domain.Product
	count    int
	locked   bool
	cursor   int
	loadErr  string
}

func NewCatalog(bus *events.Bus, reg *Registry) *Catalog {
	c := &Catalog{
		bus:     bus,
		pageTpl: reg.Lookup("page"),
		cardTpl: reg.Lookup("card-catalog"),
	}
	bus.On(contracts.PageChanged, func(evt events.Event) {
		p := evt.(contracts.PageChangedEvent)
		c.products = p.Products
		c.count = p.BasketCount
		c.locked = p.IsLocked
		if c.cursor >= len(c.products) {
			c.cursor = len(c.products) - 1
		}
		if c.cursor < 0 {
			c.cursor = 0
		}
	})
	return c
}

// SetLoadError puts the catalog into its failed-fetch state.
func (c *Catalog) SetLoadError(msg string) {
	c.loadErr = msg
}

func (c *Catalog) MoveCursor(delta int) {
	c.cursor += delta
	if c.cursor < 0 {
		c.cursor = 0
	}
	if max := len(c.products) - 1; c.cursor > max && max >= 0 {
		c.cursor = max
	}
}

// Select emits the card-selection intent for the product under the cursor.
func (c *Catalog) Select() {
	if c.cursor < 0 || c.cursor >= len(c.products) {
		return
	}
	c.bus.Emit(contracts.CardSelectEvent{Product: c.products[c.cursor]})
}

// SelectIndex selects by the 1-based position shown on the card.
func (c *Catalog) SelectIndex(i int) {
	if i < 1 || i > len(c.products) {
		return
	}
	c.cursor = i - 1
	c.Select()
}

// OpenBasket emits the basket-open intent.
func (c *Catalog) OpenBasket() {
	c.bus.Emit(contracts.BasketOpenEvent{})
}

func (c *Catalog) Render() string {
	var b strings.Builder
	b.WriteString(renderFragment(c.pageTpl, map[string]any{
		"Count":  c.count,
		"Locked": c.locked,
	}))
	b.WriteString("\n\n")
	if c.loadErr != "" {
		b.WriteString("Не удалось загрузить каталог: " + c.loadErr + "\n")
		return b.String()
	}
	if len(c.products) == 0 {
		b.WriteString("Каталог пуст\n")
		return b.String()
	}
	for i, p := range c.products {
		marker := " "
		if i == c.cursor {
			marker = ">"
		}
		line := renderFragment(c.cardTpl, map[string]any{
			"Marker":   marker,
			"Index":    i + 1,
			"Title":    p.Title,
			"Category": p.Category,
			"Price":    FormatPrice(p.Price),
		})
		if line != "" {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

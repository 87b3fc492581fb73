package view

import (
	"strings"
	"text/template"

	"github.com/nazeru/larek-storefront-go/internal/storefront/contracts"
	"github.com/nazeru/larek-storefront-go/internal/storefront/domain"
	"github.com/nazeru/larek-storefront-go/pkg/events"
)

// BasketView renders the cart contents. Line items are numbered from 1 in
// display order and removal targets the product id under the cursor, so
// deleting one entry re-numbers the rest.
type BasketView struct {
	bus     *events.Bus
	tpl     *template.Template
	itemTpl *template.Template

	items  []domain.Product
	total  int64
	cursor int
}

func NewBasketView(bus *events.Bus, reg *Registry) *BasketView {
	v := &BasketView{
		bus:     bus,
		tpl:     reg.Lookup("basket"),
		itemTpl: reg.Lookup("basket-item"),
	}
	bus.On(contracts.BasketChanged, func(evt events.Event) {
		b := evt.(contracts.BasketChangedEvent)
		v.items = b.Products
		v.total = b.Total
		if v.cursor >= len(v.items) {
			v.cursor = len(v.items) - 1
		}
		if v.cursor < 0 {
			v.cursor = 0
		}
	})
	return v
}

func (v *BasketView) MoveCursor(delta int) {
	v.cursor += delta
	if v.cursor < 0 {
		v.cursor = 0
	}
	if max := len(v.items) - 1; v.cursor > max && max >= 0 {
		v.cursor = max
	}
}

// RemoveSelected emits the removal intent for the entry under the cursor.
func (v *BasketView) RemoveSelected() {
	if v.cursor < 0 || v.cursor >= len(v.items) {
		return
	}
	v.bus.Emit(contracts.BasketRemoveEvent{ID: v.items[v.cursor].ID})
}

// Checkout emits the checkout intent. An empty basket is a disabled
// affordance: nothing is emitted.
func (v *BasketView) Checkout() {
	if len(v.items) == 0 {
		return
	}
	v.bus.Emit(contracts.BasketCheckoutEvent{})
}

func (v *BasketView) Render() string {
	var lines strings.Builder
	if len(v.items) == 0 {
		lines.WriteString("Корзина пуста\n")
	}
	for i, p := range v.items {
		marker := " "
		if i == v.cursor {
			marker = ">"
		}
		line := renderFragment(v.itemTpl, map[string]any{
			"Marker": marker,
			"Index":  i + 1,
			"Title":  p.Title,
			"Price":  FormatPrice(p.Price),
		})
		if line != "" {
			lines.WriteString(line)
			lines.WriteString("\n")
		}
	}
	action := "[enter] Оформить"
	if len(v.items) == 0 {
		action = "Оформление недоступно"
	}
	return renderFragment(v.tpl, map[string]any{
		"Items":  lines.String(),
		"Total":  FormatTotal(v.total),
		"Action": action,
	})
}

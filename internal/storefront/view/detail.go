package view

import (
	"strings"
	"text/template"

	"github.com/nazeru/larek-storefront-go/internal/storefront/contracts"
	"github.com/nazeru/larek-storefront-go/internal/storefront/domain"
	"github.com/nazeru/larek-storefront-go/pkg/events"
)

// ProductDetail renders the preview card for the selected product and emits
// the buy intent.
type ProductDetail struct {
	bus *events.Bus
	tpl *template.Template

	product  domain.Product
	inBasket bool
}

func NewProductDetail(bus *events.Bus, reg *Registry) *ProductDetail {
	d := &ProductDetail{
		bus: bus,
		tpl: reg.Lookup("card-preview"),
	}
	bus.On(contracts.CardSelect, func(evt events.Event) {
		d.product = evt.(contracts.CardSelectEvent).Product
		d.inBasket = false
	})
	bus.On(contracts.BasketChanged, func(evt events.Event) {
		b := evt.(contracts.BasketChangedEvent)
		d.inBasket = false
		for _, p := range b.Products {
			if p.ID == d.product.ID {
				d.inBasket = true
				break
			}
		}
	})
	return d
}

func (d *ProductDetail) Product() domain.Product { return d.product }

// Buy emits the add-to-basket intent for the displayed product.
func (d *ProductDetail) Buy() {
	if d.product.ID == "" {
		return
	}
	d.bus.Emit(contracts.BasketAddEvent{Product: d.product})
}

func (d *ProductDetail) Render() string {
	var b strings.Builder
	b.WriteString(renderFragment(d.tpl, map[string]any{
		"Title":       d.product.Title,
		"Category":    d.product.Category,
		"Description": d.product.Description,
		"Price":       FormatPrice(d.product.Price),
	}))
	b.WriteString("\n\n")
	if d.inBasket {
		b.WriteString("Уже в корзине\n")
	} else {
		b.WriteString("[enter] В корзину\n")
	}
	return b.String()
}

package model

import (
	"github.com/nazeru/larek-storefront-go/internal/storefront/contracts"
	"github.com/nazeru/larek-storefront-go/internal/storefront/domain"
	"github.com/nazeru/larek-storefront-go/pkg/events"
)

// Page holds the display-oriented page snapshot: catalog, basket counter and
// the scroll-lock flag. Every setter rebuilds the snapshot wholesale and
// emits page:changed.
type Page struct {
	bus         *events.Bus
	products    []domain.Product
	basketCount int
	locked      bool
}

func NewPage(bus *events.Bus) *Page {
	return &Page{bus: bus}
}

func (p *Page) SetProducts(products []domain.Product) {
	p.products = append([]domain.Product(nil), products...)
	p.emitChange()
}

func (p *Page) SetBasketCount(count int) {
	p.basketCount = count
	p.emitChange()
}

func (p *Page) SetLocked(locked bool) {
	p.locked = locked
	p.emitChange()
}

func (p *Page) Products() []domain.Product {
	return append([]domain.Product(nil), p.products...)
}

func (p *Page) BasketCount() int { return p.basketCount }
func (p *Page) IsLocked() bool   { return p.locked }

func (p *Page) emitChange() {
	p.bus.Emit(contracts.PageChangedEvent{
		Products:    p.Products(),
		BasketCount: p.basketCount,
		IsLocked:    p.locked,
	})
}

package model

import (
	"github.com/nazeru/larek-storefront-go/internal/storefront/contracts"
	"github.com/nazeru/larek-storefront-go/internal/storefront/domain"
	"github.com/nazeru/larek-storefront-go/pkg/events"
)

// Basket owns the set of products in the cart. Entries are keyed by product
// id; display order is insertion order.
type Basket struct {
	bus   *events.Bus
	items map[domain.ProductID]domain.Product
	order []domain.ProductID
}

func NewBasket(bus *events.Bus) *Basket {
	b := &Basket{
		bus:   bus,
		items: map[domain.ProductID]domain.Product{},
	}
	bus.On(contracts.BasketAdd, func(evt events.Event) {
		b.AddProduct(evt.(contracts.BasketAddEvent).Product)
	})
	bus.On(contracts.BasketRemove, func(evt events.Event) {
		b.RemoveProduct(evt.(contracts.BasketRemoveEvent).ID)
	})
	return b
}

// AddProduct is an idempotent upsert: re-adding an id keeps its position and
// takes the latest product data.
func (b *Basket) AddProduct(p domain.Product) {
	wasEmpty := len(b.order) == 0
	if _, ok := b.items[p.ID]; !ok {
		b.order = append(b.order, p.ID)
	}
	b.items[p.ID] = p
	b.emitChange(wasEmpty)
}

// RemoveProduct is a strict no-op for an absent id: no events are emitted.
func (b *Basket) RemoveProduct(id domain.ProductID) {
	if _, ok := b.items[id]; !ok {
		return
	}
	delete(b.items, id)
	for i, oid := range b.order {
		if oid == id {
			b.order = append(b.order[:i:i], b.order[i+1:]...)
			break
		}
	}
	b.emitChange(false)
}

func (b *Basket) ClearBasket() {
	wasEmpty := len(b.order) == 0
	b.items = map[domain.ProductID]domain.Product{}
	b.order = nil
	b.emitChange(wasEmpty)
}

// GetProducts returns the entries in display order.
func (b *Basket) GetProducts() []domain.Product {
	out := make([]domain.Product, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.items[id])
	}
	return out
}

func (b *Basket) GetTotal() int64 {
	var total int64
	for _, p := range b.items {
		total += p.PriceValue()
	}
	return total
}

func (b *Basket) GetProductCount() int {
	return len(b.order)
}

func (b *Basket) Contains(id domain.ProductID) bool {
	_, ok := b.items[id]
	return ok
}

// FormData carries the order-form fields into CreateOrderData.
type FormData struct {
	Address string
	Payment domain.PaymentType
	Email   string
	Phone   string
}

// CreateOrderData merges the current basket with form data into a submission
// payload. Pure: no state change, no emission.
func (b *Basket) CreateOrderData(form FormData) domain.Order {
	items := make([]domain.ProductID, len(b.order))
	copy(items, b.order)
	return domain.Order{
		Payment: form.Payment,
		Email:   form.Email,
		Phone:   form.Phone,
		Address: form.Address,
		Total:   b.GetTotal(),
		Items:   items,
	}
}

// emitChange fires basket:changed and basket:total-updated after every
// mutation, plus basket:empty exactly once per transition into empty.
func (b *Basket) emitChange(wasEmpty bool) {
	b.bus.Emit(contracts.BasketChangedEvent{
		Products: b.GetProducts(),
		Total:    b.GetTotal(),
		Count:    b.GetProductCount(),
	})
	b.bus.Emit(contracts.BasketTotalUpdatedEvent{Total: b.GetTotal()})
	if len(b.order) == 0 && !wasEmpty {
		b.bus.Emit(contracts.BasketEmptyEvent{})
	}
}

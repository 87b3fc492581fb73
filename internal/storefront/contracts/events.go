// Package contracts defines every event that crosses a model/view boundary:
// the names and the typed payloads. Intent events travel view -> model,
// change events travel model -> view; nothing else couples the two sides.
package contracts

import (
	"github.com/nazeru/larek-storefront-go/internal/storefront/domain"
	"github.com/nazeru/larek-storefront-go/pkg/events"
)

const (
	// Change events.
	CatalogLoaded      events.Name = "catalog:loaded"
	BasketChanged      events.Name = "basket:changed"
	BasketTotalUpdated events.Name = "basket:total-updated"
	BasketEmpty        events.Name = "basket:empty"
	OrderChanged       events.Name = "order:changed"
	ContactsChanged    events.Name = "contacts:changed"
	OrderCompleted     events.Name = "order:completed"
	OrderFailed        events.Name = "order:failed"
	PageChanged        events.Name = "page:changed"
	ModalOpen          events.Name = "modal:open"
	ModalClose         events.Name = "modal:close"

	// Intent events.
	CardSelect     events.Name = "card:select"
	BasketAdd      events.Name = "basket:add"
	BasketRemove   events.Name = "basket:remove"
	BasketOpen     events.Name = "basket:open"
	BasketCheckout events.Name = "basket:checkout"
	AddressSet     events.Name = "address:set"
	PaymentSet     events.Name = "payment:set"
	EmailSet       events.Name = "email:set"
	PhoneSet       events.Name = "phone:set"
	OrderSubmit    events.Name = "order:submit"
	ContactsSubmit events.Name = "contacts:submit"
	SuccessClose   events.Name = "success:close"
)

// Field names the order-form inputs, used as keys of the validation errors
// map.
type Field string

const (
	FieldAddress Field = "address"
	FieldPayment Field = "payment"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
)

type CatalogLoadedEvent struct {
	Products []domain.Product
}

func (CatalogLoadedEvent) EventName() events.Name { return CatalogLoaded }

type BasketChangedEvent struct {
	Products []domain.Product // display order
	Total    int64
	Count    int
}

func (BasketChangedEvent) EventName() events.Name { return BasketChanged }

type BasketTotalUpdatedEvent struct {
	Total int64
}

func (BasketTotalUpdatedEvent) EventName() events.Name { return BasketTotalUpdated }

type BasketEmptyEvent struct{}

func (BasketEmptyEvent) EventName() events.Name { return BasketEmpty }

type OrderChangedEvent struct {
	Address              string
	Payment              domain.PaymentType
	HasAddressAndPayment bool
	Errors               map[Field]string
}

func (OrderChangedEvent) EventName() events.Name { return OrderChanged }

type ContactsChangedEvent struct {
	Email       string
	Phone       string
	HasContacts bool
	Errors      map[Field]string
}

func (ContactsChangedEvent) EventName() events.Name { return ContactsChanged }

type OrderCompletedEvent struct {
	Result domain.OrderResult
}

func (OrderCompletedEvent) EventName() events.Name { return OrderCompleted }

type OrderFailedEvent struct {
	Message string
}

func (OrderFailedEvent) EventName() events.Name { return OrderFailed }

type PageChangedEvent struct {
	Products    []domain.Product
	BasketCount int
	IsLocked    bool
}

func (PageChangedEvent) EventName() events.Name { return PageChanged }

type ModalOpenEvent struct{}

func (ModalOpenEvent) EventName() events.Name { return ModalOpen }

type ModalCloseEvent struct{}

func (ModalCloseEvent) EventName() events.Name { return ModalClose }

type CardSelectEvent struct {
	Product domain.Product
}

func (CardSelectEvent) EventName() events.Name { return CardSelect }

type BasketAddEvent struct {
	Product domain.Product
}

func (BasketAddEvent) EventName() events.Name { return BasketAdd }

type BasketRemoveEvent struct {
	ID domain.ProductID
}

func (BasketRemoveEvent) EventName() events.Name { return BasketRemove }

type BasketOpenEvent struct{}

func (BasketOpenEvent) EventName() events.Name { return BasketOpen }

type BasketCheckoutEvent struct{}

func (BasketCheckoutEvent) EventName() events.Name { return BasketCheckout }

type AddressSetEvent struct {
	Value string
}

func (AddressSetEvent) EventName() events.Name { return AddressSet }

type PaymentSetEvent struct {
	Value domain.PaymentType
}

func (PaymentSetEvent) EventName() events.Name { return PaymentSet }

type EmailSetEvent struct {
	Value string
}

func (EmailSetEvent) EventName() events.Name { return EmailSet }

type PhoneSetEvent struct {
	Value string
}

func (PhoneSetEvent) EventName() events.Name { return PhoneSet }

type OrderSubmitEvent struct{}

func (OrderSubmitEvent) EventName() events.Name { return OrderSubmit }

type ContactsSubmitEvent struct{}

func (ContactsSubmitEvent) EventName() events.Name { return ContactsSubmit }

type SuccessCloseEvent struct{}

func (SuccessCloseEvent) EventName() events.Name { return SuccessClose }

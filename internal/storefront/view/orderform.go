package view

import (
	"text/template"

	"github.com/nazeru/larek-storefront-go/internal/storefront/contracts"
	"github.com/nazeru/larek-storefront-go/internal/storefront/domain"
	"github.com/nazeru/larek-storefront-go/pkg/events"
)

// OrderFormView renders the first checkout step: payment choice and delivery
// address. Keystrokes become field-set intents carrying the whole new value,
// the way the browser original re-read the input on every change.
type OrderFormView struct {
	bus *events.Bus
	tpl *template.Template

	address string
	payment domain.PaymentType
	valid   bool
	errors  map[contracts.Field]string
}

func NewOrderFormView(bus *events.Bus, reg *Registry) *OrderFormView {
	v := &OrderFormView{
		bus:    bus,
		tpl:    reg.Lookup("order"),
		errors: map[contracts.Field]string{},
	}
	bus.On(contracts.OrderChanged, func(evt events.Event) {
		o := evt.(contracts.OrderChangedEvent)
		v.address = o.Address
		v.payment = o.Payment
		v.valid = o.HasAddressAndPayment
		v.errors = o.Errors
	})
	return v
}

// Input appends typed characters to the address and emits the intent.
func (v *OrderFormView) Input(s string) {
	v.bus.Emit(contracts.AddressSetEvent{Value: v.address + s})
}

func (v *OrderFormView) Backspace() {
	if v.address == "" {
		return
	}
	runes := []rune(v.address)
	v.bus.Emit(contracts.AddressSetEvent{Value: string(runes[:len(runes)-1])})
}

func (v *OrderFormView) ChoosePayment(p domain.PaymentType) {
	v.bus.Emit(contracts.PaymentSetEvent{Value: p})
}

// Submit emits the step-forward intent; disabled until address and payment
// are both present.
func (v *OrderFormView) Submit() {
	if !v.valid {
		return
	}
	v.bus.Emit(contracts.OrderSubmitEvent{})
}

func (v *OrderFormView) Render() string {
	onlineMarker, deliveryMarker := " ", " "
	switch v.payment {
	case domain.PaymentOnline:
		onlineMarker = "●"
	case domain.PaymentOnDelivery:
		deliveryMarker = "●"
	}
	action := "Дальше недоступно"
	if v.valid {
		action = "[enter] Дальше"
	}
	return renderFragment(v.tpl, map[string]any{
		"OnlineMarker":   onlineMarker,
		"DeliveryMarker": deliveryMarker,
		"Address":        v.address,
		"Cursor":         "_",
		"Error":          v.errors[contracts.FieldAddress],
		"Action":         action,
	})
}

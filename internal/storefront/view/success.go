package view

import (
	"text/template"

	"github.com/nazeru/larek-storefront-go/internal/storefront/contracts"
	"github.com/nazeru/larek-storefront-go/internal/storefront/domain"
	"github.com/nazeru/larek-storefront-go/pkg/events"
)

// SuccessView renders the order confirmation.
type SuccessView struct {
	bus *events.Bus
	tpl *template.Template

	result domain.OrderResult
}

func NewSuccessView(bus *events.Bus, reg *Registry) *SuccessView {
	v := &SuccessView{
		bus: bus,
		tpl: reg.Lookup("success"),
	}
	bus.On(contracts.OrderCompleted, func(evt events.Event) {
		v.result = evt.(contracts.OrderCompletedEvent).Result
	})
	return v
}

// Close emits the back-to-catalog intent.
func (v *SuccessView) Close() {
	v.bus.Emit(contracts.SuccessCloseEvent{})
}

func (v *SuccessView) Render() string {
	return renderFragment(v.tpl, map[string]any{
		"ID":    v.result.ID,
		"Total": FormatTotal(v.result.Total),
	})
}

// Package flow drives the checkout sequence from basket to success. It owns
// the screen-level state machine and the single asynchronous edge of the
// whole program: the order submission.
package flow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nazeru/larek-storefront-go/internal/storefront/contracts"
	"github.com/nazeru/larek-storefront-go/internal/storefront/domain"
	"github.com/nazeru/larek-storefront-go/internal/storefront/model"
	"github.com/nazeru/larek-storefront-go/pkg/events"
	"github.com/nazeru/larek-storefront-go/pkg/logging"
)

type State string

const (
	StateCatalog       State = "CATALOG"
	StateProductDetail State = "PRODUCT_DETAIL"
	StateBasket        State = "BASKET"
	StateOrderForm     State = "ORDER_FORM"
	StateContactForm   State = "CONTACT_FORM"
	StateSubmitting    State = "SUBMITTING"
	StateSuccess       State = "SUCCESS"
)

// Submitter is the network capability the flow consumes.
type Submitter interface {
	PostOrder(ctx context.Context, order domain.Order, idemKey string) (domain.OrderResult, error)
}

// Outcome is the completion of one submission attempt, delivered back onto
// the event loop.
type Outcome struct {
	Attempt string
	Result  domain.OrderResult
	Err     error
}

// Flow listens to intent events, applies the transition guards and mutates
// nothing but its own state; basket and form changes go through their models.
type Flow struct {
	bus     *events.Bus
	basket  *model.Basket
	form    *model.OrderForm
	api     Submitter
	timeout time.Duration

	state          State
	attempt        string         // id of the in-flight submission, "" when idle
	pending        func() Outcome // deferred network call for the host loop to run
	needsFormReset bool
	detached       bool // modal was dismissed while submitting
}

func New(bus *events.Bus, basket *model.Basket, form *model.OrderForm, api Submitter, timeout time.Duration) *Flow {
	f := &Flow{
		bus:     bus,
		basket:  basket,
		form:    form,
		api:     api,
		timeout: timeout,
		state:   StateCatalog,
	}
	bus.On(contracts.CardSelect, func(events.Event) {
		f.state = StateProductDetail
	})
	bus.On(contracts.BasketAdd, func(events.Event) {
		// Покупка из превью закрывает модалку и возвращает в каталог.
		if f.state == StateProductDetail {
			f.state = StateCatalog
		}
	})
	bus.On(contracts.BasketOpen, func(events.Event) {
		f.state = StateBasket
	})
	bus.On(contracts.BasketCheckout, func(events.Event) {
		f.handleCheckout()
	})
	bus.On(contracts.OrderSubmit, func(events.Event) {
		f.handleOrderSubmit()
	})
	bus.On(contracts.ContactsSubmit, func(events.Event) {
		f.handleContactsSubmit()
	})
	bus.On(contracts.ModalClose, func(events.Event) {
		f.handleModalClose()
	})
	bus.On(contracts.SuccessClose, func(events.Event) {
		if f.state == StateSuccess {
			f.state = StateCatalog
		}
	})
	return f
}

func (f *Flow) State() State { return f.state }

// TakePending hands the deferred submission to the host loop exactly once.
// The host runs the closure off the loop and feeds the Outcome back through
// CompleteSubmit.
func (f *Flow) TakePending() func() Outcome {
	p := f.pending
	f.pending = nil
	return p
}

// Basket -> OrderForm, guarded by a non-empty basket. A checkout abandoned
// through modal dismissal resets the form here, on the next opening.
func (f *Flow) handleCheckout() {
	if f.state != StateBasket || f.basket.GetProductCount() == 0 {
		return
	}
	if f.needsFormReset {
		f.form.Reset()
		f.needsFormReset = false
	}
	f.state = StateOrderForm
}

// OrderForm -> ContactForm, guarded by address+payment.
func (f *Flow) handleOrderSubmit() {
	if f.state != StateOrderForm || !f.form.HasAddressAndPayment() {
		return
	}
	f.state = StateContactForm
}

// ContactForm -> Submitting, guarded by a complete form and by at most one
// in-flight submission per attempt.
func (f *Flow) handleContactsSubmit() {
	if f.state != StateContactForm || !f.form.IsComplete() {
		return
	}
	order := f.basket.CreateOrderData(f.form.Data())
	attempt := uuid.NewString()
	f.attempt = attempt
	f.state = StateSubmitting
	f.detached = false

	api, timeout := f.api, f.timeout
	f.pending = func() Outcome {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()
		result, err := api.PostOrder(ctx, order, attempt)
		logging.Log(logging.Fields{
			Component:  "flow",
			Event:      "order:submit",
			Status:     statusOf(err),
			DurationMS: time.Since(start).Milliseconds(),
		})
		return Outcome{Attempt: attempt, Result: result, Err: err}
	}
}

// CompleteSubmit applies a submission outcome. Stale outcomes (a different
// attempt, or the flow has already moved on) are dropped.
func (f *Flow) CompleteSubmit(o Outcome) {
	if f.state != StateSubmitting || o.Attempt != f.attempt {
		logging.Log(logging.Fields{
			Component: "flow",
			Event:     "order:submit",
			Status:    "stale_outcome",
			Message:   "dropping completion for attempt " + o.Attempt,
		})
		return
	}
	f.attempt = ""
	detached := f.detached
	f.detached = false

	if o.Err != nil {
		// Данные формы и корзина сохраняются, повторная отправка возможна.
		if detached {
			f.state = StateCatalog
		} else {
			f.state = StateContactForm
		}
		f.bus.Emit(contracts.OrderFailedEvent{Message: o.Err.Error()})
		return
	}

	f.basket.ClearBasket()
	f.form.Reset()
	if detached {
		f.state = StateCatalog
	} else {
		f.state = StateSuccess
	}
	f.bus.Emit(contracts.OrderCompletedEvent{Result: o.Result})
}

// Manual dismissal: before submitting it abandons the order form (reset on
// next checkout) and never touches the basket; during submission the network
// call keeps running and its outcome is applied detached from any view.
func (f *Flow) handleModalClose() {
	switch f.state {
	case StateProductDetail, StateBasket:
		f.state = StateCatalog
	case StateOrderForm, StateContactForm:
		f.state = StateCatalog
		f.needsFormReset = true
	case StateSubmitting:
		f.detached = true
	case StateSuccess:
		f.state = StateCatalog
	}
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

package view

import (
	"text/template"

	"github.com/nazeru/larek-storefront-go/internal/storefront/contracts"
	"github.com/nazeru/larek-storefront-go/pkg/events"
)

// ContactsView renders the second checkout step: email and phone, with a
// focus toggle between the two inputs. A failed submission surfaces its
// error inline until the form changes again.
type ContactsView struct {
	bus *events.Bus
	tpl *template.Template

	email      string
	phone      string
	valid      bool
	errors     map[contracts.Field]string
	phoneFocus bool
	submitErr  string
}

func NewContactsView(bus *events.Bus, reg *Registry) *ContactsView {
	v := &ContactsView{
		bus:    bus,
		tpl:    reg.Lookup("contacts"),
		errors: map[contracts.Field]string{},
	}
	bus.On(contracts.ContactsChanged, func(evt events.Event) {
		c := evt.(contracts.ContactsChangedEvent)
		v.email = c.Email
		v.phone = c.Phone
		v.valid = c.HasContacts
		v.errors = c.Errors
		v.submitErr = ""
	})
	bus.On(contracts.OrderFailed, func(evt events.Event) {
		v.submitErr = evt.(contracts.OrderFailedEvent).Message
	})
	return v
}

// ToggleFocus switches between the email and phone inputs.
func (v *ContactsView) ToggleFocus() {
	v.phoneFocus = !v.phoneFocus
}

func (v *ContactsView) Input(s string) {
	if v.phoneFocus {
		v.bus.Emit(contracts.PhoneSetEvent{Value: v.phone + s})
		return
	}
	v.bus.Emit(contracts.EmailSetEvent{Value: v.email + s})
}

func (v *ContactsView) Backspace() {
	if v.phoneFocus {
		if v.phone == "" {
			return
		}
		runes := []rune(v.phone)
		v.bus.Emit(contracts.PhoneSetEvent{Value: string(runes[:len(runes)-1])})
		return
	}
	if v.email == "" {
		return
	}
	runes := []rune(v.email)
	v.bus.Emit(contracts.EmailSetEvent{Value: string(runes[:len(runes)-1])})
}

// Submit emits the submission intent; disabled until both contacts validate.
func (v *ContactsView) Submit() {
	if !v.valid {
		return
	}
	v.bus.Emit(contracts.ContactsSubmitEvent{})
}

func (v *ContactsView) Render() string {
	emailMarker, phoneMarker := ">", " "
	emailCursor, phoneCursor := "_", ""
	if v.phoneFocus {
		emailMarker, phoneMarker = " ", ">"
		emailCursor, phoneCursor = "", "_"
	}
	var errs []string
	if msg, ok := v.errors[contracts.FieldEmail]; ok {
		errs = append(errs, msg)
	}
	if msg, ok := v.errors[contracts.FieldPhone]; ok {
		errs = append(errs, msg)
	}
	if v.submitErr != "" {
		errs = append(errs, v.submitErr)
	}
	action := "Оплата недоступна"
	if v.valid {
		action = "[enter] Оплатить"
	}
	return renderFragment(v.tpl, map[string]any{
		"EmailMarker": emailMarker,
		"PhoneMarker": phoneMarker,
		"Email":       v.email,
		"Phone":       v.phone,
		"EmailCursor": emailCursor,
		"PhoneCursor": phoneCursor,
		"Errors":      errs,
		"Action":      action,
	})
}

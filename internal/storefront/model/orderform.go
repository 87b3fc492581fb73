package model

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nazeru/larek-storefront-go/internal/storefront/contracts"
	"github.com/nazeru/larek-storefront-go/internal/storefront/domain"
	"github.com/nazeru/larek-storefront-go/pkg/events"
)

// Тексты ошибок валидации формы заказа.
const (
	MsgEmptyAddress = "Необходимо указать адрес доставки"
	MsgInvalidEmail = "Некорректный формат email"
	MsgEmptyEmail   = "Необходимо указать email"
	MsgEmptyPhone   = "Необходимо указать номер телефона"
	MsgInvalidPhone = "Некорректный формат номера телефона"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Optional +7/8 prefix, spaces/brackets/dashes as separators, ten
	// significant digits.
	phonePattern = regexp.MustCompile(`^(\+7|8)?[\s()-]*(\d[\s()-]*){10}$`)
)

// OrderForm owns the in-progress order fields and their validation errors.
// Validation is field-scoped: a setter validates its own field only.
type OrderForm struct {
	bus      *events.Bus
	validate *validator.Validate

	address string
	payment domain.PaymentType
	email   string
	phone   string
	errors  map[contracts.Field]string
}

func NewOrderForm(bus *events.Bus) *OrderForm {
	v := validator.New()
	// Формат email из спецификации мягче встроенного тега "email".
	_ = v.RegisterValidation("emailfmt", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("ruphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	f := &OrderForm{
		bus:      bus,
		validate: v,
		payment:  domain.PaymentUnset,
		errors:   map[contracts.Field]string{},
	}
	bus.On(contracts.AddressSet, func(evt events.Event) {
		f.SetAddress(evt.(contracts.AddressSetEvent).Value)
	})
	bus.On(contracts.PaymentSet, func(evt events.Event) {
		f.SetPayment(evt.(contracts.PaymentSetEvent).Value)
	})
	bus.On(contracts.EmailSet, func(evt events.Event) {
		f.SetEmail(evt.(contracts.EmailSetEvent).Value)
	})
	bus.On(contracts.PhoneSet, func(evt events.Event) {
		f.SetPhone(evt.(contracts.PhoneSetEvent).Value)
	})
	return f
}

func (f *OrderForm) SetAddress(value string) {
	f.address = value
	f.validateAddress()
	f.emitOrderChanged()
}

func (f *OrderForm) SetPayment(value domain.PaymentType) {
	f.payment = value
	f.validatePayment()
	f.emitOrderChanged()
}

func (f *OrderForm) SetEmail(value string) {
	f.email = value
	f.validateEmail()
	f.emitContactsChanged()
}

func (f *OrderForm) SetPhone(value string) {
	f.phone = value
	f.validatePhone()
	f.emitContactsChanged()
}

func (f *OrderForm) Address() string             { return f.address }
func (f *OrderForm) Payment() domain.PaymentType { return f.payment }
func (f *OrderForm) Email() string               { return f.email }
func (f *OrderForm) Phone() string               { return f.phone }

// Errors returns a copy of the current field->message map.
func (f *OrderForm) Errors() map[contracts.Field]string {
	return copyErrors(f.errors)
}

func (f *OrderForm) HasAddressAndPayment() bool {
	return strings.TrimSpace(f.address) != "" && f.payment != domain.PaymentUnset
}

func (f *OrderForm) HasContacts() bool {
	return emailPattern.MatchString(f.email) && phonePattern.MatchString(f.phone)
}

func (f *OrderForm) IsComplete() bool {
	return f.HasAddressAndPayment() && f.HasContacts()
}

// ValidateForm re-runs every validator and reports whether the form is clean.
func (f *OrderForm) ValidateForm() bool {
	f.validateAddress()
	f.validatePayment()
	f.validateEmail()
	f.validatePhone()
	return len(f.errors) == 0
}

// Data snapshots the fields for order assembly.
func (f *OrderForm) Data() FormData {
	return FormData{
		Address: f.address,
		Payment: f.payment,
		Email:   f.email,
		Phone:   f.phone,
	}
}

// Reset clears all fields and errors and notifies both form views.
func (f *OrderForm) Reset() {
	f.address = ""
	f.payment = domain.PaymentUnset
	f.email = ""
	f.phone = ""
	f.errors = map[contracts.Field]string{}
	f.emitOrderChanged()
	f.emitContactsChanged()
}

func (f *OrderForm) validateAddress() {
	if f.validate.Var(strings.TrimSpace(f.address), "required") != nil {
		f.errors[contracts.FieldAddress] = MsgEmptyAddress
		return
	}
	delete(f.errors, contracts.FieldAddress)
}

func (f *OrderForm) validatePayment() {
	// Оплата выбирается кнопкой, ошибочного текста для неё нет.
	delete(f.errors, contracts.FieldPayment)
}

func (f *OrderForm) validateEmail() {
	switch {
	case f.validate.Var(f.email, "required") != nil:
		f.errors[contracts.FieldEmail] = MsgEmptyEmail
	case f.validate.Var(f.email, "emailfmt") != nil:
		f.errors[contracts.FieldEmail] = MsgInvalidEmail
	default:
		delete(f.errors, contracts.FieldEmail)
	}
}

func (f *OrderForm) validatePhone() {
	switch {
	case f.validate.Var(f.phone, "required") != nil:
		f.errors[contracts.FieldPhone] = MsgEmptyPhone
	case f.validate.Var(f.phone, "ruphone") != nil:
		f.errors[contracts.FieldPhone] = MsgInvalidPhone
	default:
		delete(f.errors, contracts.FieldPhone)
	}
}

func (f *OrderForm) emitOrderChanged() {
	f.bus.Emit(contracts.OrderChangedEvent{
		Address:              f.address,
		Payment:              f.payment,
		HasAddressAndPayment: f.HasAddressAndPayment(),
		Errors:               copyErrors(f.errors),
	})
}

func (f *OrderForm) emitContactsChanged() {
	f.bus.Emit(contracts.ContactsChangedEvent{
		Email:       f.email,
		Phone:       f.phone,
		HasContacts: f.HasContacts(),
		Errors:      copyErrors(f.errors),
	})
}

func copyErrors(src map[contracts.Field]string) map[contracts.Field]string {
	out := make(map[contracts.Field]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Package app is the composition root: it builds the bus, the models, the
// views and the checkout flow, wires the cross-component event handlers and
// hosts everything inside a bubbletea program.
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nazeru/larek-storefront-go/internal/storefront/api"
	"github.com/nazeru/larek-storefront-go/internal/storefront/contracts"
	"github.com/nazeru/larek-storefront-go/internal/storefront/domain"
	"github.com/nazeru/larek-storefront-go/internal/storefront/flow"
	"github.com/nazeru/larek-storefront-go/internal/storefront/model"
	"github.com/nazeru/larek-storefront-go/internal/storefront/view"
	"github.com/nazeru/larek-storefront-go/pkg/events"
	"github.com/nazeru/larek-storefront-go/pkg/logging"
)

type Config struct {
	RequestTimeout time.Duration
	SubmitTimeout  time.Duration
}

type catalogMsg struct {
	products []domain.Product
	err      error
}

type outcomeMsg flow.Outcome

// App owns no domain state of its own; all state lives in the models and the
// flow, and every cross-component effect goes through the bus.
type App struct {
	cfg    Config
	bus    *events.Bus
	client *api.Client

	basket *model.Basket
	form   *model.OrderForm
	page   *model.Page
	modal  *model.Modal
	flow   *flow.Flow

	catalog  *view.Catalog
	detail   *view.ProductDetail
	basketV  *view.BasketView
	orderV   *view.OrderFormView
	contacts *view.ContactsView
	success  *view.SuccessView

	status string
}

func New(cfg Config, client *api.Client) *App {
	bus := events.NewBus()
	bus.OnPanic = func(name events.Name, recovered any) {
		logging.Log(logging.Fields{
			Component: "bus",
			Event:     string(name),
			Status:    "handler_panic",
			Message:   "recovered handler panic",
		})
	}

	a := &App{cfg: cfg, bus: bus, client: client}

	// Модели подписываются на интенты первыми, затем flow, затем
	// представления: порядок регистрации определяет порядок вызова.
	a.basket = model.NewBasket(bus)
	a.form = model.NewOrderForm(bus)
	a.page = model.NewPage(bus)
	a.modal = model.NewModal(bus)
	a.flow = flow.New(bus, a.basket, a.form, client, cfg.SubmitTimeout)

	reg := view.NewRegistry()
	a.catalog = view.NewCatalog(bus, reg)
	a.detail = view.NewProductDetail(bus, reg)
	a.basketV = view.NewBasketView(bus, reg)
	a.orderV = view.NewOrderFormView(bus, reg)
	a.contacts = view.NewContactsView(bus, reg)
	a.success = view.NewSuccessView(bus, reg)

	a.wire()
	return a
}

// wire registers the handlers the original composition kept at top level:
// page lock, counters and the modal content swaps of the checkout sequence.
func (a *App) wire() {
	a.bus.On(contracts.ModalOpen, func(events.Event) {
		a.page.SetLocked(true)
	})
	a.bus.On(contracts.ModalClose, func(events.Event) {
		a.page.SetLocked(false)
	})
	a.bus.On(contracts.CatalogLoaded, func(evt events.Event) {
		a.page.SetProducts(evt.(contracts.CatalogLoadedEvent).Products)
	})
	a.bus.On(contracts.BasketChanged, func(evt events.Event) {
		a.page.SetBasketCount(evt.(contracts.BasketChangedEvent).Count)
	})
	a.bus.On(contracts.CardSelect, func(events.Event) {
		a.modal.SetContent(a.detail)
		a.modal.Open()
	})
	a.bus.On(contracts.BasketAdd, func(events.Event) {
		// Покупка из превью сразу закрывает модальное окно.
		a.modal.Close()
	})
	a.bus.On(contracts.BasketOpen, func(events.Event) {
		a.modal.SetContent(a.basketV)
		a.modal.Open()
	})
	a.bus.On(contracts.BasketCheckout, func(events.Event) {
		if a.flow.State() == flow.StateOrderForm {
			a.modal.SetContent(a.orderV)
			a.modal.Open()
		}
	})
	a.bus.On(contracts.OrderSubmit, func(events.Event) {
		if a.flow.State() == flow.StateContactForm {
			a.modal.SetContent(a.contacts)
		}
	})
	a.bus.On(contracts.OrderCompleted, func(evt events.Event) {
		result := evt.(contracts.OrderCompletedEvent).Result
		if a.modal.IsOpen() {
			a.modal.SetContent(a.success)
			a.status = ""
			return
		}
		// Модалку уже закрыли — результат показываем строкой статуса.
		a.status = "Заказ " + result.ID + " оформлен"
	})
	a.bus.On(contracts.OrderFailed, func(evt events.Event) {
		a.status = "Ошибка оформления: " + evt.(contracts.OrderFailedEvent).Message
	})
	a.bus.On(contracts.SuccessClose, func(events.Event) {
		a.modal.Close()
	})
}

func (a *App) Init() tea.Cmd {
	return a.fetchCatalogCmd()
}

func (a *App) fetchCatalogCmd() tea.Cmd {
	client, timeout := a.client, a.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		products, err := client.GetProducts(ctx)
		return catalogMsg{products: products, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogMsg:
		if msg.err != nil {
			logging.Log(logging.Fields{
				Component: "app",
				Event:     "catalog:loaded",
				Status:    "error",
				Message:   msg.err.Error(),
			})
			a.catalog.SetLoadError(msg.err.Error())
			a.status = "Каталог недоступен"
			return a, nil
		}
		a.bus.Emit(contracts.CatalogLoadedEvent{Products: msg.products})
		return a, nil

	case outcomeMsg:
		a.flow.CompleteSubmit(flow.Outcome(msg))
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if key == "esc" {
		a.modal.Close()
		return a, nil
	}

	if !a.modal.IsOpen() {
		switch key {
		case "q":
			return a, tea.Quit
		case "up":
			a.catalog.MoveCursor(-1)
		case "down":
			a.catalog.MoveCursor(1)
		case "enter":
			a.catalog.Select()
		case "b":
			a.catalog.OpenBasket()
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				a.catalog.SelectIndex(int(key[0] - '0'))
			}
		}
		return a, nil
	}

	switch a.flow.State() {
	case flow.StateProductDetail:
		if key == "enter" {
			a.detail.Buy()
		}
	case flow.StateBasket:
		switch key {
		case "up":
			a.basketV.MoveCursor(-1)
		case "down":
			a.basketV.MoveCursor(1)
		case "x":
			a.basketV.RemoveSelected()
		case "enter":
			a.basketV.Checkout()
		}
	case flow.StateOrderForm:
		switch key {
		case "left":
			a.orderV.ChoosePayment(domain.PaymentOnline)
		case "right":
			a.orderV.ChoosePayment(domain.PaymentOnDelivery)
		case "enter":
			a.orderV.Submit()
		case "backspace":
			a.orderV.Backspace()
		default:
			if s := typedText(msg); s != "" {
				a.orderV.Input(s)
			}
		}
	case flow.StateContactForm:
		switch key {
		case "tab":
			a.contacts.ToggleFocus()
		case "enter":
			a.contacts.Submit()
			if cmd := a.submitCmd(); cmd != nil {
				a.status = "Отправка заказа..."
				return a, cmd
			}
		case "backspace":
			a.contacts.Backspace()
		default:
			if s := typedText(msg); s != "" {
				a.contacts.Input(s)
			}
		}
	case flow.StateSubmitting:
		// Заказ уже в полёте; клавиши форм игнорируются.
	case flow.StateSuccess:
		if key == "enter" {
			a.success.Close()
		}
	}
	return a, nil
}

// submitCmd drains the flow's deferred submission into a bubbletea command.
func (a *App) submitCmd() tea.Cmd {
	pending := a.flow.TakePending()
	if pending == nil {
		return nil
	}
	return func() tea.Msg {
		return outcomeMsg(pending())
	}
}

func typedText(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyRunes:
		return string(msg.Runes)
	case tea.KeySpace:
		return " "
	}
	return ""
}

func (a *App) View() string {
	var body string
	if a.modal.IsOpen() && a.modal.Content() != nil {
		body = a.modal.Content().Render() + "\n[esc] Закрыть\n"
	} else {
		body = a.catalog.Render()
	}
	out := body
	if a.status != "" {
		out += "\n" + a.status + "\n"
	}
	out += "\nУправление: стрелки и enter (или 1-9), b — корзина, esc — закрыть, q — выход\n"
	return out
}

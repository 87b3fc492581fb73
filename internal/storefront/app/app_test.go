package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazeru/larek-storefront-go/internal/storefront/api"
	"github.com/nazeru/larek-storefront-go/internal/storefront/contracts"
	"github.com/nazeru/larek-storefront-go/internal/storefront/domain"
	"github.com/nazeru/larek-storefront-go/internal/storefront/flow"
)

func price(v int64) *int64 { return &v }

type backend struct {
	products  []domain.Product
	failOrder bool
	orders    int
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/product", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"total": len(b.products), "items": b.products})
	})
	mux.HandleFunc("/order", func(w http.ResponseWriter, r *http.Request) {
		b.orders++
		if b.failOrder {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"оформление недоступно"}`))
			return
		}
		var req domain.Order
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(domain.OrderResult{ID: "ord1", Total: req.Total})
	})
	return mux
}

func newTestApp(t *testing.T, b *backend) (*App, func()) {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	client := api.New(srv.Client(), srv.URL, srv.URL+"/content")
	a := New(Config{RequestTimeout: time.Second, SubmitTimeout: time.Second}, client)
	return a, srv.Close
}

// loadCatalog runs the startup fetch synchronously.
func loadCatalog(t *testing.T, a *App) {
	t.Helper()
	msg := a.fetchCatalogCmd()()
	_, _ = a.Update(msg)
}

func keyPress(a *App, key tea.KeyType) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: key})
	return cmd
}

// fillCheckout drives the flow from catalog to a completed contact form.
func fillCheckout(t *testing.T, a *App) {
	t.Helper()
	a.bus.Emit(contracts.BasketOpenEvent{})
	a.bus.Emit(contracts.BasketCheckoutEvent{})
	require.Equal(t, flow.StateOrderForm, a.flow.State())

	a.bus.Emit(contracts.AddressSetEvent{Value: "Москва"})
	a.bus.Emit(contracts.PaymentSetEvent{Value: domain.PaymentOnline})
	a.bus.Emit(contracts.OrderSubmitEvent{})
	require.Equal(t, flow.StateContactForm, a.flow.State())

	a.bus.Emit(contracts.EmailSetEvent{Value: "a@b.com"})
	a.bus.Emit(contracts.PhoneSetEvent{Value: "+79991234567"})
}

// submitOrder presses enter on the contact form and runs the returned
// command to completion, feeding the outcome back into Update.
func submitOrder(t *testing.T, a *App) {
	t.Helper()
	cmd := keyPress(a, tea.KeyEnter)
	require.NotNil(t, cmd, "отправка должна вернуть команду")
	_, _ = a.Update(cmd())
}

// TestScenarioA_CatalogToBasket: two fetched products, one priceless, both
// land in the basket; total counts only the priced one.
func TestScenarioA_CatalogToBasket(t *testing.T) {
	b := &backend{products: []domain.Product{
		{ID: "1", Title: "первый", Price: price(100)},
		{ID: "2", Title: "второй", Price: nil},
	}}
	a, done := newTestApp(t, b)
	defer done()

	loadCatalog(t, a)
	out := a.catalog.Render()
	assert.Contains(t, out, "1. первый")
	assert.Contains(t, out, "2. второй")

	a.bus.Emit(contracts.BasketAddEvent{Product: b.products[0]})
	a.bus.Emit(contracts.BasketAddEvent{Product: b.products[1]})

	assert.Equal(t, int64(100), a.basket.GetTotal())
	assert.Equal(t, 2, a.basket.GetProductCount())
	assert.Equal(t, 2, a.page.BasketCount())
}

// TestScenarioB_FormGuards: submit affordances follow the validation state
// step by step.
func TestScenarioB_FormGuards(t *testing.T) {
	b := &backend{products: []domain.Product{{ID: "1", Title: "первый", Price: price(100)}}}
	a, done := newTestApp(t, b)
	defer done()

	loadCatalog(t, a)
	a.bus.Emit(contracts.BasketAddEvent{Product: b.products[0]})
	a.bus.Emit(contracts.BasketOpenEvent{})
	a.bus.Emit(contracts.BasketCheckoutEvent{})
	require.Equal(t, flow.StateOrderForm, a.flow.State())

	// Пустой адрес: переход дальше закрыт.
	a.bus.Emit(contracts.AddressSetEvent{Value: ""})
	a.bus.Emit(contracts.OrderSubmitEvent{})
	require.Equal(t, flow.StateOrderForm, a.flow.State())
	assert.Contains(t, a.orderV.Render(), "Дальше недоступно")

	a.bus.Emit(contracts.AddressSetEvent{Value: "Москва"})
	a.bus.Emit(contracts.PaymentSetEvent{Value: domain.PaymentOnline})
	assert.Contains(t, a.orderV.Render(), "[enter] Дальше")

	a.bus.Emit(contracts.OrderSubmitEvent{})
	require.Equal(t, flow.StateContactForm, a.flow.State())

	a.bus.Emit(contracts.EmailSetEvent{Value: "abc"})
	a.bus.Emit(contracts.PhoneSetEvent{Value: "+79991234567"})
	assert.Contains(t, a.contacts.Render(), "Оплата недоступна")
	assert.Contains(t, a.contacts.Render(), "Некорректный формат email")

	a.bus.Emit(contracts.EmailSetEvent{Value: "a@b.com"})
	assert.Contains(t, a.contacts.Render(), "[enter] Оплатить")
}

// TestScenarioC_SuccessfulOrder: full checkout, success screen, reset state.
func TestScenarioC_SuccessfulOrder(t *testing.T) {
	b := &backend{products: []domain.Product{{ID: "1", Title: "первый", Price: price(100)}}}
	a, done := newTestApp(t, b)
	defer done()

	loadCatalog(t, a)
	a.bus.Emit(contracts.BasketAddEvent{Product: b.products[0]})
	fillCheckout(t, a)
	submitOrder(t, a)

	require.Equal(t, flow.StateSuccess, a.flow.State())
	assert.Contains(t, a.success.Render(), "Списано 100 синапсов")
	assert.Contains(t, a.success.Render(), "ord1")
	assert.Equal(t, 0, a.basket.GetProductCount())
	assert.Equal(t, 0, a.page.BasketCount())
	require.True(t, a.modal.IsOpen())

	// Закрытие экрана успеха возвращает в каталог.
	_ = keyPress(a, tea.KeyEnter)
	require.Equal(t, flow.StateCatalog, a.flow.State())
	assert.False(t, a.modal.IsOpen())

	// Повторное оформление начинается с чистой формы.
	a.bus.Emit(contracts.BasketAddEvent{Product: b.products[0]})
	a.bus.Emit(contracts.BasketOpenEvent{})
	a.bus.Emit(contracts.BasketCheckoutEvent{})
	assert.Empty(t, a.form.Address())
	assert.Equal(t, domain.PaymentUnset, a.form.Payment())
}

// TestScenarioD_FailedSubmission: the user stays on the contact form with
// everything retained and resubmission succeeds once the backend recovers.
func TestScenarioD_FailedSubmission(t *testing.T) {
	b := &backend{
		products:  []domain.Product{{ID: "1", Title: "первый", Price: price(100)}},
		failOrder: true,
	}
	a, done := newTestApp(t, b)
	defer done()

	loadCatalog(t, a)
	a.bus.Emit(contracts.BasketAddEvent{Product: b.products[0]})
	fillCheckout(t, a)
	submitOrder(t, a)

	require.Equal(t, flow.StateContactForm, a.flow.State())
	assert.Equal(t, 1, a.basket.GetProductCount(), "корзина сохраняется")
	assert.Contains(t, a.contacts.Render(), "502")
	assert.Contains(t, a.status, "Ошибка оформления")

	b.failOrder = false
	submitOrder(t, a)
	require.Equal(t, flow.StateSuccess, a.flow.State())
	assert.Equal(t, 2, b.orders)
}

// TestModalKeyRouting: escape closes the modal from any screen and the page
// lock follows the modal state.
func TestModalKeyRouting(t *testing.T) {
	b := &backend{products: []domain.Product{{ID: "1", Title: "первый", Price: price(100)}}}
	a, done := newTestApp(t, b)
	defer done()

	loadCatalog(t, a)
	_ = keyPress(a, tea.KeyEnter) // выбор карточки
	require.Equal(t, flow.StateProductDetail, a.flow.State())
	require.True(t, a.modal.IsOpen())
	assert.True(t, a.page.IsLocked())

	_ = keyPress(a, tea.KeyEsc)
	assert.False(t, a.modal.IsOpen())
	assert.False(t, a.page.IsLocked())
	assert.Equal(t, flow.StateCatalog, a.flow.State())
}

// TestBuyFromPreviewClosesModal: buying from the preview adds the product
// and closes the modal in one action.
func TestBuyFromPreviewClosesModal(t *testing.T) {
	b := &backend{products: []domain.Product{{ID: "1", Title: "первый", Price: price(100)}}}
	a, done := newTestApp(t, b)
	defer done()

	loadCatalog(t, a)
	_ = keyPress(a, tea.KeyEnter) // карточка
	require.Equal(t, flow.StateProductDetail, a.flow.State())

	_ = keyPress(a, tea.KeyEnter) // купить
	assert.Equal(t, 1, a.basket.GetProductCount())
	assert.False(t, a.modal.IsOpen())
	assert.Equal(t, flow.StateCatalog, a.flow.State())
}

// TestCatalogFetchFailure: a failed fetch renders the degraded catalog and
// keeps the app alive.
func TestCatalogFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := api.New(srv.Client(), srv.URL, "")
	a := New(Config{RequestTimeout: time.Second, SubmitTimeout: time.Second}, client)

	loadCatalog(t, a)
	assert.Contains(t, a.catalog.Render(), "Не удалось загрузить каталог")
	assert.Contains(t, a.View(), "Каталог недоступен")
}

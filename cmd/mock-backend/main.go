// mock-backend is a stand-in for the external storefront backend: an
// in-memory catalog behind GET /api/weblarek/product and an order endpoint
// that echoes a generated id. Failure injection and latency are switchable
// through the environment for exercising the client's error paths.
package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/nazeru/larek-storefront-go/internal/storefront/domain"
	"github.com/nazeru/larek-storefront-go/pkg/metrics"
)

type cfg struct {
	Port       string
	FailOrders bool
	OrderDelay time.Duration
}

func readCfg() cfg {
	fail := strings.ToLower(getenv("FAIL_ORDERS", "false"))
	delayMS, _ := strconv.Atoi(getenv("ORDER_DELAY_MS", "0"))
	return cfg{
		Port:       getenv("PORT", "8080"),
		FailOrders: fail == "1" || fail == "true" || fail == "yes",
		OrderDelay: time.Duration(delayMS) * time.Millisecond,
	}
}

func price(v int64) *int64 { return &v }

var catalog = []domain.Product{
	{ID: "854cef69-976d-4c2a-a18c-2aa45046c390", Title: "+1 час в сутках", Description: "Если планируете решать задачи в тренажёре, берите два.", Image: "/5_Dots.svg", Category: "софт-скил", Price: price(750)},
	{ID: "c101ab44-ed99-4a54-990d-47aa2bb4e7d9", Title: "HEX-леденец", Description: "Лизните, чтобы понять, как это работает.", Image: "/Shell.svg", Category: "другое", Price: price(1450)},
	{ID: "b06cde61-912f-4663-9751-09956c0eed67", Title: "Мамка-таймер", Description: "Будет стоять над душой и не давать прокрастинировать.", Image: "/Asterisk_2.svg", Category: "софт-скил", Price: nil},
	{ID: "412bcf81-7e75-4e70-bdb9-d3c73c9803b7", Title: "Фреймворк куки судьбы", Description: "Откройте эти куки, чтобы узнать, какой фреймворк вы должны изучить дальше.", Image: "/Soft_Flower.svg", Category: "дополнительное", Price: price(2500)},
	{ID: "1c521d84-c48d-48fa-8cfb-9d911fa515fd", Title: "Кнопка «Замьютить кота»", Description: "Если орёт кот, нажмите кнопку.", Image: "/mute-cat.svg", Category: "кнопка", Price: price(2000)},
}

type orderRequest struct {
	Payment domain.PaymentType `json:"payment"`
	Email   string             `json:"email"`
	Phone   string             `json:"phone"`
	Address string             `json:"address"`
	Total   int64              `json:"total"`
	Items   []domain.ProductID `json:"items"`
}

func main() {
	_ = godotenv.Load()
	cfg := readCfg()

	m := metrics.NewServerMetrics("mock_backend")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/api/weblarek/product", m.Middleware("product", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"total": len(catalog), "items": catalog})
	})))
	mux.Handle("/api/weblarek/order", m.Middleware("order", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
			return
		}
		if cfg.OrderDelay > 0 {
			time.Sleep(cfg.OrderDelay)
		}
		if cfg.FailOrders {
			writeJSON(w, http.StatusBadGateway, map[string]any{"error": "оформление заказов временно недоступно"})
			return
		}
		var req orderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
			return
		}
		if err := validateOrder(req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, domain.OrderResult{ID: uuid.NewString(), Total: req.Total})
	})))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("mock-backend listening on :%s (FAIL_ORDERS=%v)", cfg.Port, cfg.FailOrders)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server error: %v", err)
	}
}

func validateOrder(req orderRequest) error {
	if len(req.Items) == 0 {
		return errors.New("items is required")
	}
	if req.Total < 0 {
		return errors.New("total must be >= 0")
	}
	if req.Payment != domain.PaymentOnline && req.Payment != domain.PaymentOnDelivery {
		return errors.New("unknown payment type")
	}
	if strings.TrimSpace(req.Address) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Phone) == "" {
		return errors.New("address, email and phone are required")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

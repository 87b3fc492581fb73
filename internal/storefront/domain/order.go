package domain

type PaymentType string

const (
	PaymentUnset      PaymentType = ""
	PaymentOnline     PaymentType = "online"
	PaymentOnDelivery PaymentType = "paymentOnDelivery"
)

// Order is the submission payload, assembled once at checkout time from the
// basket and the order form. Never persisted client-side.
type Order struct {
	Payment PaymentType `json:"payment"`
	Email   string      `json:"email"`
	Phone   string      `json:"phone"`
	Address string      `json:"address"`
	Total   int64       `json:"total"`
	Items   []ProductID `json:"items"`
}

// OrderResult is what the backend returns on a successful submission. Used
// only to fill the success screen.
type OrderResult struct {
	ID    string `json:"id"`
	Total int64  `json:"total"`
}

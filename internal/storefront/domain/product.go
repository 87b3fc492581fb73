package domain

type ProductID string

// Product is an immutable catalog entry. Price is in synapses; nil means the
// item is priceless and contributes nothing to a basket total.
type Product struct {
	ID          ProductID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Price       *int64    `json:"price"`
}

// PriceValue treats a nil price as zero.
func (p Product) PriceValue() int64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

package cart

import "github.com/google/uuid"

// CartDTO is the cart payload returned to clients, with derived totals.
type CartDTO struct {
	Items         []CartItemDTO `json:"items"`
	SubtotalCents int64         `json:"subtotal_cents"`
	ItemCount     int           `json:"item_count"`
}

// CartItemDTO is one rendered cart line.
type CartItemDTO struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	LineTotalCents int64     `json:"line_total_cents"`
	ImageURL       *string   `json:"image_url,omitempty"`
	StockQuantity  int       `json:"stock_quantity"`
}

// NewCartDTO renders the cart with derived subtotal and item count.
func NewCartDTO(cart *Cart) *CartDTO {
	items := make([]CartItemDTO, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemDTO{
			ProductID:      item.ProductID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			LineTotalCents: item.UnitPriceCents * int64(item.Quantity),
			ImageURL:       item.ImageURL,
			StockQuantity:  item.StockQuantity,
		})
	}
	return &CartDTO{
		Items:         items,
		SubtotalCents: cart.SubtotalCents(),
		ItemCount:     cart.ItemCount(),
	}
}

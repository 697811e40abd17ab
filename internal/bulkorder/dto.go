package bulkorder

import "github.com/google/uuid"

// FormDTO is the order sheet payload rendered for a distributor.
type FormDTO struct {
	DiscountPercentage int           `json:"discount_percentage"`
	MaxOrderValueCents int64         `json:"max_order_value_cents"`
	Lines              []FormLineDTO `json:"lines"`
}

// FormLineDTO is one orderable product with both list and discounted price.
type FormLineDTO struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	ListPriceCents int64     `json:"list_price_cents"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	StockQuantity  int       `json:"stock_quantity"`
}

// NewFormDTO renders the form without quantities; the sheet always starts at
// zero on the client.
func NewFormDTO(form *Form) *FormDTO {
	lines := make([]FormLineDTO, 0, len(form.Lines))
	for _, line := range form.Lines {
		lines = append(lines, FormLineDTO{
			ProductID:      line.ProductID,
			Name:           line.Name,
			ListPriceCents: line.ListPriceCents,
			UnitPriceCents: line.UnitPriceCents,
			StockQuantity:  line.StockQuantity,
		})
	}
	return &FormDTO{
		DiscountPercentage: form.DiscountPercentage,
		MaxOrderValueCents: form.MaxOrderValueCents,
		Lines:              lines,
	}
}

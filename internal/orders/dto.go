package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
)

// OrderDTO is the order payload returned to clients.
type OrderDTO struct {
	ID              uuid.UUID      `json:"id"`
	Status          string         `json:"status"`
	IsBulk          bool           `json:"is_bulk"`
	Currency        string         `json:"currency"`
	TotalCents      int64          `json:"total_cents"`
	ShippingAddress string         `json:"shipping_address"`
	Notes           *string        `json:"notes,omitempty"`
	Items           []OrderItemDTO `json:"items"`
	Payment         *PaymentDTO    `json:"payment,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// OrderItemDTO is one purchased line as charged.
type OrderItemDTO struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	LineTotalCents int64     `json:"line_total_cents"`
}

// PaymentDTO surfaces the gateway payment state attached to an order.
type PaymentDTO struct {
	Status           string  `json:"status"`
	AmountCents      int64   `json:"amount_cents"`
	ProviderIntentID *string `json:"provider_intent_id,omitempty"`
	FailureReason    *string `json:"failure_reason,omitempty"`
}

// NewOrderDTO builds the DTO from the persisted order graph.
func NewOrderDTO(order *models.Order) *OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ProductID:      item.ProductID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			LineTotalCents: item.LineTotalCents,
		})
	}

	dto := &OrderDTO{
		ID:              order.ID,
		Status:          string(order.Status),
		IsBulk:          order.IsBulk,
		Currency:        string(order.Currency),
		TotalCents:      order.TotalCents,
		ShippingAddress: order.ShippingAddress,
		Notes:           order.Notes,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
	if order.Payment != nil {
		dto.Payment = &PaymentDTO{
			Status:           string(order.Payment.Status),
			AmountCents:      order.Payment.AmountCents,
			ProviderIntentID: order.Payment.ProviderIntentID,
			FailureReason:    order.Payment.FailureReason,
		}
	}
	return dto
}

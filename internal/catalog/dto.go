package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
)

// ProductDTO is the catalog payload returned to clients.
type ProductDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Tags          []string  `json:"tags"`
	PriceCents    int64     `json:"price_cents"`
	ImageURL      *string   `json:"image_url,omitempty"`
	IsAvailable   bool      `json:"is_available"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Category:      product.Category,
		Tags:          append([]string{}, product.Tags...),
		PriceCents:    product.PriceCents,
		ImageURL:      product.ImageURL,
		IsAvailable:   product.IsAvailable,
		StockQuantity: product.StockQuantity,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

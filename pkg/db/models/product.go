package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is the canonical catalog listing. Stock and availability are owned
// by this table; the cart only ever reads snapshots of them.
type Product struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string         `gorm:"column:name;not null"`
	Description   *string        `gorm:"column:description"`
	Category      *string        `gorm:"column:category"`
	Tags          pq.StringArray `gorm:"column:tags;type:text[]"`
	PriceCents    int64          `gorm:"column:price_cents;not null"`
	ImageURL      *string        `gorm:"column:image_url"`
	IsAvailable   bool           `gorm:"column:is_available;not null;default:true"`
	StockQuantity int            `gorm:"column:stock_quantity;not null;default:0"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

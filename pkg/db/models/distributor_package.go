package models

import (
	"time"

	"github.com/google/uuid"
)

// DistributorPackage defines the reseller subscription terms: the bulk price
// list discount and the per-order spending ceiling.
type DistributorPackage struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name               string    `gorm:"column:name;not null"`
	DurationMonths     int       `gorm:"column:duration_months;not null"`
	PriceCents         int64     `gorm:"column:price_cents;not null"`
	MaxOrderValueCents int64     `gorm:"column:max_order_value_cents;not null"`
	DiscountPercentage int       `gorm:"column:discount_percentage;not null"`
	IsActive           bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

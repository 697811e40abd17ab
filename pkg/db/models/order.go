package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dannysckt/storefront-backend/pkg/enums"
)

// Order persists a submitted cart or bulk order with its captured totals.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Status          enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'"`
	IsBulk          bool              `gorm:"column:is_bulk;not null;default:false"`
	Currency        enums.Currency    `gorm:"column:currency;not null;default:'myr'"`
	TotalCents      int64             `gorm:"column:total_cents;not null"`
	ShippingAddress string            `gorm:"column:shipping_address;not null"`
	Notes           *string           `gorm:"column:notes"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment         *PaymentRecord    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

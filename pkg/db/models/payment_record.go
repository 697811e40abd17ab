package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dannysckt/storefront-backend/pkg/enums"
)

// PaymentRecord tracks the gateway payment intent attached to an order.
type PaymentRecord struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID          uuid.UUID           `gorm:"column:order_id;type:uuid;not null;uniqueIndex"`
	ProviderIntentID *string             `gorm:"column:provider_intent_id;uniqueIndex"`
	AmountCents      int64               `gorm:"column:amount_cents;not null"`
	Currency         enums.Currency      `gorm:"column:currency;not null;default:'myr'"`
	Status           enums.PaymentStatus `gorm:"column:status;type:payment_status;not null;default:'pending'"`
	FailureReason    *string             `gorm:"column:failure_reason"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a bookable restaurant event (cooking class, tasting night).
type Event struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Description *string   `gorm:"column:description"`
	Location    *string   `gorm:"column:location"`
	StartsAt    time.Time `gorm:"column:starts_at;not null"`
	Capacity    int       `gorm:"column:capacity;not null"`
	PriceCents  int64     `gorm:"column:price_cents;not null;default:0"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dannysckt/storefront-backend/pkg/enums"
)

// EventBooking reserves seats for a user at an event.
type EventBooking struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EventID         uuid.UUID           `gorm:"column:event_id;type:uuid;not null;index"`
	UserID          uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	NumberOfGuests  int                 `gorm:"column:number_of_guests;not null"`
	SpecialRequests *string             `gorm:"column:special_requests"`
	Status          enums.BookingStatus `gorm:"column:status;type:booking_status;not null;default:'pending'"`
	Event           *Event              `gorm:"foreignKey:EventID"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

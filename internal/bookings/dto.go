package bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
)

// EventDTO is the public shape of a bookable event.
type EventDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	Capacity    int       `json:"capacity"`
	SeatsLeft   int       `json:"seats_left"`
	PriceCents  int64     `json:"price_cents"`
}

// NewEventDTO maps the event row plus the current seat count.
func NewEventDTO(event *models.Event, bookedGuests int) *EventDTO {
	seatsLeft := event.Capacity - bookedGuests
	if seatsLeft < 0 {
		seatsLeft = 0
	}
	return &EventDTO{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		StartsAt:    event.StartsAt,
		Capacity:    event.Capacity,
		SeatsLeft:   seatsLeft,
		PriceCents:  event.PriceCents,
	}
}

// BookingDTO is the public shape of a booking.
type BookingDTO struct {
	ID              uuid.UUID `json:"id"`
	EventID         uuid.UUID `json:"event_id"`
	EventTitle      string    `json:"event_title,omitempty"`
	StartsAt        time.Time `json:"starts_at,omitempty"`
	NumberOfGuests  int       `json:"number_of_guests"`
	SpecialRequests *string   `json:"special_requests,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewBookingDTO maps the booking row, folding in the event when preloaded.
func NewBookingDTO(booking *models.EventBooking) *BookingDTO {
	dto := &BookingDTO{
		ID:              booking.ID,
		EventID:         booking.EventID,
		NumberOfGuests:  booking.NumberOfGuests,
		SpecialRequests: booking.SpecialRequests,
		Status:          string(booking.Status),
		CreatedAt:       booking.CreatedAt,
	}
	if booking.Event != nil {
		dto.EventTitle = booking.Event.Title
		dto.StartsAt = booking.Event.StartsAt
	}
	return dto
}

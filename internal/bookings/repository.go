package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
	"github.com/dannysckt/storefront-backend/pkg/enums"
)

// Repository persists events and their bookings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListUpcomingEvents(ctx context.Context, now time.Time) ([]models.Event, error)
	FindEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	CountBookedGuests(ctx context.Context, eventID uuid.UUID) (int, error)
	CreateBooking(ctx context.Context, booking *models.EventBooking) (*models.EventBooking, error)
	FindBookingByID(ctx context.Context, id uuid.UUID) (*models.EventBooking, error)
	ListUserBookings(ctx context.Context, userID uuid.UUID) ([]models.EventBooking, error)
	ListEventBookings(ctx context.Context, eventID uuid.UUID) ([]models.EventBooking, error)
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status enums.BookingStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// ListUpcomingEvents returns active events that have not started yet, soonest
// first.
func (r *repository) ListUpcomingEvents(ctx context.Context, now time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND starts_at > ?", true, now).
		Order("starts_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// FindEventByID loads a single event.
func (r *repository) FindEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// CountBookedGuests sums the guests across the event's live bookings.
// Cancelled bookings release their seats.
func (r *repository) CountBookedGuests(ctx context.Context, eventID uuid.UUID) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.EventBooking{}).
		Where("event_id = ? AND status <> ?", eventID, enums.BookingStatusCancelled).
		Select("COALESCE(SUM(number_of_guests), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// CreateBooking inserts the booking, assigning an id when the caller left it
// empty.
func (r *repository) CreateBooking(ctx context.Context, booking *models.EventBooking) (*models.EventBooking, error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// FindBookingByID loads a booking with its event.
func (r *repository) FindBookingByID(ctx context.Context, id uuid.UUID) (*models.EventBooking, error) {
	var booking models.EventBooking
	err := r.db.WithContext(ctx).
		Preload("Event").
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListUserBookings returns the user's bookings, newest first.
func (r *repository) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]models.EventBooking, error) {
	var bookings []models.EventBooking
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListEventBookings returns every live booking for an event, oldest first so
// staff see the arrival order.
func (r *repository) ListEventBookings(ctx context.Context, eventID uuid.UUID) ([]models.EventBooking, error) {
	var bookings []models.EventBooking
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND status <> ?", eventID, enums.BookingStatusCancelled).
		Order("created_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateBookingStatus flips the booking lifecycle status.
func (r *repository) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status enums.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.EventBooking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

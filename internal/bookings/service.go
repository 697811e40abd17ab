package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
	"github.com/dannysckt/storefront-backend/pkg/enums"
	pkgerrors "github.com/dannysckt/storefront-backend/pkg/errors"
	"github.com/dannysckt/storefront-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// BookInput carries a seat reservation request.
type BookInput struct {
	EventID         uuid.UUID
	NumberOfGuests  int
	SpecialRequests *string
}

// Service exposes event listings and seat bookings.
type Service interface {
	ListEvents(ctx context.Context) ([]EventDTO, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*EventDTO, error)
	Book(ctx context.Context, userID uuid.UUID, input BookInput) (*BookingDTO, error)
	ListMyBookings(ctx context.Context, userID uuid.UUID) ([]BookingDTO, error)
	CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingDTO, error)
	ListEventBookings(ctx context.Context, eventID uuid.UUID) ([]BookingDTO, error)
}

type service struct {
	tx    txRunner
	store Repository
	now   func() time.Time
	logg  *logger.Logger
}

// NewService wires the bookings service.
func NewService(tx txRunner, store Repository, logg *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if store == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{tx: tx, store: store, now: time.Now, logg: logg}, nil
}

func (s *service) ListEvents(ctx context.Context) ([]EventDTO, error) {
	events, err := s.store.ListUpcomingEvents(ctx, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing events")
	}

	dtos := make([]EventDTO, 0, len(events))
	for i := range events {
		booked, err := s.store.CountBookedGuests(ctx, events[i].ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting booked guests")
		}
		dtos = append(dtos, *NewEventDTO(&events[i], booked))
	}
	return dtos, nil
}

func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*EventDTO, error) {
	event, err := s.loadEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	booked, err := s.store.CountBookedGuests(ctx, event.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting booked guests")
	}
	return NewEventDTO(event, booked), nil
}

// Book reserves seats. The capacity check and the insert run in one
// transaction so concurrent requests cannot overbook the event.
func (s *service) Book(ctx context.Context, userID uuid.UUID, input BookInput) (*BookingDTO, error) {
	if input.NumberOfGuests < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeQuantityRange, "number of guests must be at least 1").
			WithDetails(map[string]any{"number_of_guests": input.NumberOfGuests})
	}

	event, err := s.loadEvent(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	if !event.StartsAt.After(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event has already started")
	}

	var booking *models.EventBooking
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		store := s.store.WithTx(tx)

		booked, err := store.CountBookedGuests(ctx, event.ID)
		if err != nil {
			return err
		}
		seatsLeft := event.Capacity - booked
		if input.NumberOfGuests > seatsLeft {
			return pkgerrors.New(pkgerrors.CodeConflict, "not enough seats left").
				WithDetails(map[string]any{"seats_left": seatsLeft, "requested": input.NumberOfGuests})
		}

		created, err := store.CreateBooking(ctx, &models.EventBooking{
			EventID:         event.ID,
			UserID:          userID,
			NumberOfGuests:  input.NumberOfGuests,
			SpecialRequests: input.SpecialRequests,
			Status:          enums.BookingStatusConfirmed,
		})
		if err != nil {
			return err
		}
		booking = created
		return nil
	})
	if txErr != nil {
		if pkgerrors.As(txErr) != nil {
			return nil, txErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "booking event")
	}

	s.logg.Info(ctx, fmt.Sprintf("event booked event=%s booking=%s guests=%d", event.ID, booking.ID, input.NumberOfGuests))
	booking.Event = event
	return NewBookingDTO(booking), nil
}

func (s *service) ListMyBookings(ctx context.Context, userID uuid.UUID) ([]BookingDTO, error) {
	bookings, err := s.store.ListUserBookings(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing bookings")
	}

	dtos := make([]BookingDTO, 0, len(bookings))
	for i := range bookings {
		dtos = append(dtos, *NewBookingDTO(&bookings[i]))
	}
	return dtos, nil
}

// CancelBooking releases the seats. Cancelling an already cancelled booking is
// a no-op.
func (s *service) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingDTO, error) {
	booking, err := s.store.FindBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading booking")
	}
	// booking ids cannot be probed
	if booking.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}

	if booking.Status == enums.BookingStatusCancelled {
		return NewBookingDTO(booking), nil
	}
	if booking.Event != nil && !booking.Event.StartsAt.After(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event has already started")
	}

	if err := s.store.UpdateBookingStatus(ctx, booking.ID, enums.BookingStatusCancelled); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancelling booking")
	}
	booking.Status = enums.BookingStatusCancelled

	s.logg.Info(ctx, fmt.Sprintf("booking cancelled booking=%s", booking.ID))
	return NewBookingDTO(booking), nil
}

// ListEventBookings is the staff view of who is coming.
func (s *service) ListEventBookings(ctx context.Context, eventID uuid.UUID) ([]BookingDTO, error) {
	if _, err := s.loadEvent(ctx, eventID); err != nil {
		return nil, err
	}
	bookings, err := s.store.ListEventBookings(ctx, eventID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing event bookings")
	}

	dtos := make([]BookingDTO, 0, len(bookings))
	for i := range bookings {
		dtos = append(dtos, *NewBookingDTO(&bookings[i]))
	}
	return dtos, nil
}

func (s *service) loadEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := s.store.FindEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading event")
	}
	if !event.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
	}
	return event, nil
}

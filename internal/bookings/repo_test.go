package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
	"github.com/dannysckt/storefront-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE events (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			location TEXT,
			starts_at DATETIME NOT NULL,
			capacity INTEGER NOT NULL,
			price_cents INTEGER NOT NULL DEFAULT 0,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE event_bookings (
			id TEXT PRIMARY KEY,
			event_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			number_of_guests INTEGER NOT NULL,
			special_requests TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME,
			updated_at DATETIME
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	t.Cleanup(func() {
		for _, table := range []string{"event_bookings", "events"} {
			require.NoError(t, db.Exec("DROP TABLE "+table).Error)
		}
	})
	return db
}

func seedEvent(t *testing.T, db *gorm.DB, startsAt time.Time, capacity int, active bool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&models.Event{
		ID:         id,
		Title:      "Wok Hei Masterclass",
		StartsAt:   startsAt,
		Capacity:   capacity,
		PriceCents: 12000,
		IsActive:   active,
	}).Error)
	return id
}

func seedBooking(t *testing.T, db *gorm.DB, eventID, userID uuid.UUID, guests int, status enums.BookingStatus) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&models.EventBooking{
		ID:             id,
		EventID:        eventID,
		UserID:         userID,
		NumberOfGuests: guests,
		Status:         status,
	}).Error)
	return id
}

func TestListUpcomingEvents(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	now := time.Now()

	later := seedEvent(t, db, now.Add(48*time.Hour), 20, true)
	soon := seedEvent(t, db, now.Add(2*time.Hour), 10, true)
	seedEvent(t, db, now.Add(-time.Hour), 10, true)  // already started
	seedEvent(t, db, now.Add(24*time.Hour), 10, false) // deactivated

	events, err := repo.ListUpcomingEvents(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, soon, events[0].ID)
	require.Equal(t, later, events[1].ID)
}

func TestCountBookedGuestsSkipsCancelled(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	eventID := seedEvent(t, db, time.Now().Add(time.Hour), 20, true)

	seedBooking(t, db, eventID, uuid.New(), 4, enums.BookingStatusConfirmed)
	seedBooking(t, db, eventID, uuid.New(), 2, enums.BookingStatusPending)
	seedBooking(t, db, eventID, uuid.New(), 6, enums.BookingStatusCancelled)

	booked, err := repo.CountBookedGuests(context.Background(), eventID)
	require.NoError(t, err)
	require.Equal(t, 6, booked)
}

func TestCountBookedGuestsEmptyEvent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	eventID := seedEvent(t, db, time.Now().Add(time.Hour), 20, true)

	booked, err := repo.CountBookedGuests(context.Background(), eventID)
	require.NoError(t, err)
	require.Equal(t, 0, booked)
}

func TestCreateAndFindBooking(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	eventID := seedEvent(t, db, time.Now().Add(time.Hour), 20, true)
	userID := uuid.New()

	created, err := repo.CreateBooking(context.Background(), &models.EventBooking{
		EventID:        eventID,
		UserID:         userID,
		NumberOfGuests: 3,
		Status:         enums.BookingStatusConfirmed,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindBookingByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, userID, found.UserID)
	require.NotNil(t, found.Event)
	require.Equal(t, "Wok Hei Masterclass", found.Event.Title)
}

func TestListUserBookingsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	eventID := seedEvent(t, db, time.Now().Add(time.Hour), 20, true)
	userID := uuid.New()

	first := seedBooking(t, db, eventID, userID, 2, enums.BookingStatusConfirmed)
	require.NoError(t, db.Model(&models.EventBooking{}).
		Where("id = ?", first).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	second := seedBooking(t, db, eventID, userID, 4, enums.BookingStatusConfirmed)
	seedBooking(t, db, eventID, uuid.New(), 1, enums.BookingStatusConfirmed)

	bookings, err := repo.ListUserBookings(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	require.Equal(t, second, bookings[0].ID)
	require.Equal(t, first, bookings[1].ID)
}

func TestListEventBookingsExcludesCancelled(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	eventID := seedEvent(t, db, time.Now().Add(time.Hour), 20, true)

	kept := seedBooking(t, db, eventID, uuid.New(), 2, enums.BookingStatusConfirmed)
	seedBooking(t, db, eventID, uuid.New(), 3, enums.BookingStatusCancelled)

	bookings, err := repo.ListEventBookings(context.Background(), eventID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	require.Equal(t, kept, bookings[0].ID)
}

func TestUpdateBookingStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	eventID := seedEvent(t, db, time.Now().Add(time.Hour), 20, true)
	bookingID := seedBooking(t, db, eventID, uuid.New(), 2, enums.BookingStatusConfirmed)

	require.NoError(t, repo.UpdateBookingStatus(context.Background(), bookingID, enums.BookingStatusCancelled))

	booking, err := repo.FindBookingByID(context.Background(), bookingID)
	require.NoError(t, err)
	require.Equal(t, enums.BookingStatusCancelled, booking.Status)
}

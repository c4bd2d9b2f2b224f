package db

import (
	"context"
	"time"

	"oasis/models"
)

// Store is the query surface the booking flow depends on. Implementations return
// models.ErrNotFound (possibly wrapped) when a single-row lookup matches nothing and the
// raw driver error for anything else.
type Store interface {
	Cabins(ctx context.Context) ([]models.Cabin, error)
	Cabin(ctx context.Context, id string) (models.Cabin, error)
	Settings(ctx context.Context) (models.Settings, error)

	GuestByEmail(ctx context.Context, email string) (models.Guest, error)
	CreateGuest(ctx context.Context, g models.Guest) error
	UpdateGuest(ctx context.Context, guestID string, u models.GuestProfileUpdate) error

	// ActiveBookings returns the cabin's bookings starting on or after since, plus any
	// booking currently checked in regardless of its dates.
	ActiveBookings(ctx context.Context, cabinID string, since time.Time) ([]models.Booking, error)
	Booking(ctx context.Context, id string) (models.Booking, error)
	// GuestBookings returns the guest's bookings ordered by start date with the cabin
	// name and image joined in.
	GuestBookings(ctx context.Context, guestID string) ([]models.GuestBooking, error)
	CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error)
	// UpdateGuestBooking and DeleteGuestBooking only touch a row whose id and guest id both
	// match; the bool reports whether such a row existed.
	UpdateGuestBooking(ctx context.Context, bookingID, guestID string, u models.BookingUpdate) (bool, error)
	DeleteGuestBooking(ctx context.Context, bookingID, guestID string) (bool, error)

	CreateContactMessage(ctx context.Context, m models.ContactMessage) error

	Close(ctx context.Context) error
}

const (
	CabinsTable   = "cabins"
	GuestsTable   = "guests"
	BookingsTable = "bookings"
	SettingsTable = "settings"
	ContactTable  = "contact"
)

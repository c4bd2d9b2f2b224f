package booking

import (
	"context"
	"fmt"
	"time"

	"oasis/models"
)

// BookingReader is the slice of the store the resolver needs.
type BookingReader interface {
	ActiveBookings(ctx context.Context, cabinID string, since time.Time) ([]models.Booking, error)
}

// Resolver answers which days of a cabin are already taken.
type Resolver struct {
	Store BookingReader
	Now   func() time.Time
}

func NewResolver(store BookingReader) *Resolver {
	return &Resolver{Store: store, Now: time.Now}
}

// Today is the current UTC calendar day.
func (r *Resolver) Today() time.Time {
	return Day(r.Now())
}

// BookedDates lists every day covered by a booking that starts today or later or is
// checked in right now. Both endpoints of a booking count and overlapping bookings
// contribute their days twice.
func (r *Resolver) BookedDates(ctx context.Context, cabinID string) ([]time.Time, error) {
	bookings, err := r.Store.ActiveBookings(ctx, cabinID, r.Today())
	if err != nil {
		return nil, fmt.Errorf("bookings %w: %w", models.ErrLoadFailed, err)
	}

	dates := []time.Time{}
	for _, b := range bookings {
		dates = append(dates, EachDay(b.StartDate, b.EndDate)...)
	}
	return dates, nil
}

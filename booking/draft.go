package booking

import (
	"fmt"
	"time"

	"oasis/models"
)

// BookingData is what a complete draft hands to Create.
type BookingData struct {
	CabinID    string    `json:"cabinId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	NumNights  int       `json:"numNights"`
	CabinPrice float64   `json:"cabinPrice"`
}

// Draft is the date range a visitor is selecting for one cabin. A zero endpoint
// means that side of the range is not chosen yet.
type Draft struct {
	Cabin models.Cabin
	From  time.Time
	To    time.Time
}

func NewDraft(cabin models.Cabin) *Draft {
	return &Draft{Cabin: cabin}
}

// SetRange replaces the selection; either side may be zero while the visitor is still picking.
func (d *Draft) SetRange(from, to time.Time) {
	d.From, d.To = dayOrZero(from), dayOrZero(to)
}

// Reset clears the selection.
func (d *Draft) Reset() {
	d.From, d.To = time.Time{}, time.Time{}
}

// Ready reports whether both endpoints are chosen.
func (d *Draft) Ready() bool {
	return !d.From.IsZero() && !d.To.IsZero()
}

// Nights is the whole number of days between the endpoints, 0 until Ready.
func (d *Draft) Nights() int {
	if !d.Ready() {
		return 0
	}
	return DaysBetween(d.From, d.To)
}

// Price is nights times the discounted nightly rate.
func (d *Draft) Price() float64 {
	return float64(d.Nights()) * d.Cabin.NightlyPrice()
}

// BookingData snapshots the draft for Create.
func (d *Draft) BookingData() (BookingData, error) {
	if !d.Ready() {
		return BookingData{}, fmt.Errorf("%w: select the dates of your stay", models.ErrMissingFields)
	}
	return BookingData{
		CabinID:    d.Cabin.ID,
		StartDate:  d.From,
		EndDate:    d.To,
		NumNights:  d.Nights(),
		CabinPrice: d.Price(),
	}, nil
}

// Validate checks the selection against the booking rules and the days already taken.
// A nil settings skips the length limits.
func (d *Draft) Validate(settings *models.Settings, booked []time.Time, today time.Time) error {
	if !d.Ready() {
		return fmt.Errorf("%w: select the dates of your stay", models.ErrMissingFields)
	}
	if !d.To.After(d.From) {
		return fmt.Errorf("%w: departure must be after arrival", models.ErrInvalidInput)
	}
	if d.From.Before(Day(today)) {
		return fmt.Errorf("%w: arrival is in the past", models.ErrInvalidInput)
	}
	if settings != nil {
		n := d.Nights()
		if settings.MinBookingLength > 0 && n < settings.MinBookingLength {
			return fmt.Errorf("%w: minimum stay is %d nights", models.ErrInvalidInput, settings.MinBookingLength)
		}
		if settings.MaxBookingLength > 0 && n > settings.MaxBookingLength {
			return fmt.Errorf("%w: maximum stay is %d nights", models.ErrInvalidInput, settings.MaxBookingLength)
		}
	}
	if RangeOverlaps(d.From, d.To, booked) {
		return models.ErrDatesUnavailable
	}
	return nil
}

// RangeOverlaps reports whether any booked day falls inside [from, to].
func RangeOverlaps(from, to time.Time, booked []time.Time) bool {
	from, to = Day(from), Day(to)
	for _, b := range booked {
		b = Day(b)
		if !b.Before(from) && !b.After(to) {
			return true
		}
	}
	return false
}

// dayOrZero is Day that leaves the zero time alone.
func dayOrZero(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return Day(t)
}

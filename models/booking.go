package models

import "time"

type BookingStatus string

const (
	StatusUnconfirmed BookingStatus = "unconfirmed"
	StatusCheckedIn   BookingStatus = "checked-in"
	StatusCheckedOut  BookingStatus = "checked-out"
)

// MaxObservationsLength caps the free-text observations stored on a booking.
const MaxObservationsLength = 1000

type Booking struct {
	ID           string        `json:"id" bson:"id"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	StartDate    time.Time     `json:"startDate" bson:"startDate"`
	EndDate      time.Time     `json:"endDate" bson:"endDate"`
	NumNights    int           `json:"numNights" bson:"numNights"`
	NumGuests    int           `json:"numGuests" bson:"numGuests"`
	CabinPrice   float64       `json:"cabinPrice" bson:"cabinPrice"`
	ExtrasPrice  float64       `json:"extrasPrice" bson:"extrasPrice"`
	TotalPrice   float64       `json:"totalPrice" bson:"totalPrice"`
	Status       BookingStatus `json:"status" bson:"status"`
	HasBreakfast bool          `json:"hasBreakfast" bson:"hasBreakfast"`
	IsPaid       bool          `json:"isPaid" bson:"isPaid"`
	Observations string        `json:"observations" bson:"observations"`
	CabinID      string        `json:"cabinId" bson:"cabinId"`
	GuestID      string        `json:"guestId" bson:"guestId"`
}

// BookingCabin is the slice of cabin data joined onto a guest's reservation list.
type BookingCabin struct {
	Name  string `json:"name" bson:"name"`
	Image string `json:"image" bson:"image"`
}

// GuestBooking is one row of a guest's reservation list.
type GuestBooking struct {
	ID         string       `json:"id" bson:"id"`
	CreatedAt  time.Time    `json:"created_at" bson:"created_at"`
	StartDate  time.Time    `json:"startDate" bson:"startDate"`
	EndDate    time.Time    `json:"endDate" bson:"endDate"`
	NumNights  int          `json:"numNights" bson:"numNights"`
	NumGuests  int          `json:"numGuests" bson:"numGuests"`
	TotalPrice float64      `json:"totalPrice" bson:"totalPrice"`
	GuestID    string       `json:"guestId" bson:"guestId"`
	CabinID    string       `json:"cabinId" bson:"cabinId"`
	Cabin      BookingCabin `json:"cabins" bson:"cabins"`
}

// BookingUpdate holds the only fields a guest may change on an existing booking.
type BookingUpdate struct {
	NumGuests    int    `json:"numGuests" bson:"numGuests"`
	Observations string `json:"observations" bson:"observations"`
}

// TruncateObservations cuts s to MaxObservationsLength characters.
func TruncateObservations(s string) string {
	r := []rune(s)
	if len(r) <= MaxObservationsLength {
		return s
	}
	return string(r[:MaxObservationsLength])
}

package models

// Settings are the hotel-wide booking rules.
type Settings struct {
	MinBookingLength    int     `json:"minBookingLength" bson:"minBookingLength"`
	MaxBookingLength    int     `json:"maxBookingLength" bson:"maxBookingLength"`
	MaxGuestsPerBooking int     `json:"maxGuestsPerBooking" bson:"maxGuestsPerBooking"`
	BreakfastPrice      float64 `json:"breakfastPrice" bson:"breakfastPrice"`
}

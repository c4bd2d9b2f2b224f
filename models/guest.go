package models

import "time"

type Guest struct {
	ID          string    `json:"id" bson:"id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	FullName    string    `json:"fullName" bson:"fullName"`
	Email       string    `json:"email" bson:"email"`
	NationalID  *string   `json:"nationalID" bson:"nationalID"`
	Nationality *string   `json:"nationality" bson:"nationality"`
	CountryFlag *string   `json:"countryFlag" bson:"countryFlag"`
}

// GuestProfileUpdate is what a guest can change from the profile page.
type GuestProfileUpdate struct {
	Nationality string `bson:"nationality"`
	CountryFlag string `bson:"countryFlag"`
	NationalID  string `bson:"nationalID"`
}

package models

import "errors"

var (
	ErrUnauthorized     = errors.New("you must be logged in")
	ErrForbidden        = errors.New("you are not allowed to modify this booking")
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDatesUnavailable = errors.New("selected dates are no longer available")
	ErrNotFound         = errors.New("not found")
	ErrLoadFailed       = errors.New("could not be loaded")
	ErrCreateFailed     = errors.New("could not be created")
	ErrUpdateFailed     = errors.New("could not be updated")
	ErrDeleteFailed     = errors.New("could not be deleted")
)

package booking

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"oasis/models"
)

// CreateForm is the guest-supplied part of a new reservation.
type CreateForm struct {
	NumGuests    int
	Observations string
}

// UpdateForm carries the fields a guest may change on a reservation.
type UpdateForm struct {
	BookingID    string
	NumGuests    int
	Observations string
}

// DraftRequest is the cabin and date range posted alongside a CreateForm.
type DraftRequest struct {
	CabinID string
	From    time.Time
	To      time.Time
}

func parseGuests(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: numGuests %q is not a number", models.ErrInvalidInput, raw)
	}
	return n, nil
}

// ParseCreateForm reads numGuests and observations.
func ParseCreateForm(v url.Values) (CreateForm, error) {
	if strings.TrimSpace(v.Get("numGuests")) == "" {
		return CreateForm{}, fmt.Errorf("%w: numGuests", models.ErrMissingFields)
	}
	n, err := parseGuests(v.Get("numGuests"))
	if err != nil {
		return CreateForm{}, err
	}
	return CreateForm{
		NumGuests:    n,
		Observations: models.TruncateObservations(v.Get("observations")),
	}, nil
}

// ParseUpdateForm requires bookingId, numGuests and observations to be submitted.
// observations may be blank but must be present.
func ParseUpdateForm(v url.Values) (UpdateForm, error) {
	var missing []string
	if strings.TrimSpace(v.Get("bookingId")) == "" {
		missing = append(missing, "bookingId")
	}
	if strings.TrimSpace(v.Get("numGuests")) == "" {
		missing = append(missing, "numGuests")
	}
	if !v.Has("observations") {
		missing = append(missing, "observations")
	}
	if len(missing) > 0 {
		return UpdateForm{}, fmt.Errorf("%w: %s", models.ErrMissingFields, strings.Join(missing, ", "))
	}

	n, err := parseGuests(v.Get("numGuests"))
	if err != nil {
		return UpdateForm{}, err
	}
	return UpdateForm{
		BookingID:    strings.TrimSpace(v.Get("bookingId")),
		NumGuests:    n,
		Observations: models.TruncateObservations(v.Get("observations")),
	}, nil
}

// ParseDraftRequest reads cabinId, startDate and endDate. Missing dates leave the
// draft unready rather than failing here.
func ParseDraftRequest(v url.Values) (DraftRequest, error) {
	req := DraftRequest{CabinID: strings.TrimSpace(v.Get("cabinId"))}
	if req.CabinID == "" {
		return DraftRequest{}, fmt.Errorf("%w: cabinId", models.ErrMissingFields)
	}
	var err error
	if s := strings.TrimSpace(v.Get("startDate")); s != "" {
		if req.From, err = ParseDay(s); err != nil {
			return DraftRequest{}, err
		}
	}
	if s := strings.TrimSpace(v.Get("endDate")); s != "" {
		if req.To, err = ParseDay(s); err != nil {
			return DraftRequest{}, err
		}
	}
	return req, nil
}

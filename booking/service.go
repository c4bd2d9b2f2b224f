package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"oasis/auth"
	"oasis/db"
	"oasis/models"
	"oasis/mq"
	"oasis/rdx"
	"oasis/utils"
)

const (
	RedirectThankYou     = "/cabins/thankyou"
	RedirectReservations = "/account/reservations"

	accountViewTTL = 5 * time.Minute
)

// Result is what a successful mutation returns to the caller.
type Result struct {
	Booking  *models.Booking `json:"booking,omitempty"`
	Redirect string          `json:"redirect"`
}

// Service runs the reservation mutations and reads for signed-in guests.
// Views and Events are optional.
type Service struct {
	Store    db.Store
	Resolver *Resolver
	Views    rdx.Cache
	Events   mq.Publisher
}

func NewService(store db.Store, views rdx.Cache, events mq.Publisher) *Service {
	return &Service{
		Store:    store,
		Resolver: NewResolver(store),
		Views:    views,
		Events:   events,
	}
}

func (s *Service) revalidate(ctx context.Context, keys ...string) {
	if s.Views == nil {
		return
	}
	// The write already happened; a stale view only lives until its TTL.
	_ = s.Views.Revalidate(ctx, keys...)
}

func (s *Service) emit(ctx context.Context, action, cabinID, bookingID string) {
	if s.Events == nil {
		return
	}
	s.Events.Emit(ctx, mq.NewAvailabilityEvent(action, cabinID, bookingID))
}

// settings returns nil when no settings row exists.
func (s *Service) settings(ctx context.Context) (*models.Settings, error) {
	st, err := s.Store.Settings(ctx)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// PrepareDraft builds and validates the draft for a posted cabin and date range.
func (s *Service) PrepareDraft(ctx context.Context, req DraftRequest) (BookingData, error) {
	cabin, err := s.Store.Cabin(ctx, req.CabinID)
	if errors.Is(err, models.ErrNotFound) {
		return BookingData{}, fmt.Errorf("cabin %s %w", req.CabinID, models.ErrNotFound)
	}
	if err != nil {
		return BookingData{}, fmt.Errorf("cabin %w: %w", models.ErrLoadFailed, err)
	}
	settings, err := s.settings(ctx)
	if err != nil {
		return BookingData{}, fmt.Errorf("settings %w: %w", models.ErrLoadFailed, err)
	}
	booked, err := s.Resolver.BookedDates(ctx, cabin.ID)
	if err != nil {
		return BookingData{}, err
	}

	draft := NewDraft(cabin)
	draft.SetRange(req.From, req.To)
	if err := draft.Validate(settings, booked, s.Resolver.Today()); err != nil {
		return BookingData{}, err
	}
	return draft.BookingData()
}

func checkGuests(n int, cabin models.Cabin, settings *models.Settings) error {
	if n < 1 || n > cabin.MaxCapacity {
		return fmt.Errorf("%w: number of guests must be between 1 and %d", models.ErrInvalidInput, cabin.MaxCapacity)
	}
	if settings != nil && settings.MaxGuestsPerBooking > 0 && n > settings.MaxGuestsPerBooking {
		return fmt.Errorf("%w: at most %d guests per booking", models.ErrInvalidInput, settings.MaxGuestsPerBooking)
	}
	return nil
}

// Create books the draft's cabin and dates for the session's guest.
func (s *Service) Create(ctx context.Context, session *auth.Session, data BookingData, form CreateForm) (Result, error) {
	if session == nil || session.GuestID == "" {
		return Result{}, models.ErrUnauthorized
	}
	if data.CabinID == "" || !data.EndDate.After(data.StartDate) {
		return Result{}, fmt.Errorf("%w: incomplete booking dates", models.ErrInvalidInput)
	}

	cabin, err := s.Store.Cabin(ctx, data.CabinID)
	if errors.Is(err, models.ErrNotFound) {
		return Result{}, fmt.Errorf("%w: unknown cabin %s", models.ErrInvalidInput, data.CabinID)
	}
	if err != nil {
		return Result{}, fmt.Errorf("booking %w: cabin lookup: %w", models.ErrCreateFailed, err)
	}
	settings, err := s.settings(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("booking %w: settings lookup: %w", models.ErrCreateFailed, err)
	}
	if err := checkGuests(form.NumGuests, cabin, settings); err != nil {
		return Result{}, err
	}

	// Best effort only: two guests racing for the same days can both pass this.
	booked, err := s.Resolver.BookedDates(ctx, cabin.ID)
	if err != nil {
		return Result{}, fmt.Errorf("booking %w: %w", models.ErrCreateFailed, err)
	}
	if RangeOverlaps(data.StartDate, data.EndDate, booked) {
		return Result{}, models.ErrDatesUnavailable
	}

	b := models.Booking{
		ID:           utils.GetUUID(),
		CreatedAt:    time.Now().UTC(),
		StartDate:    Day(data.StartDate),
		EndDate:      Day(data.EndDate),
		NumNights:    data.NumNights,
		NumGuests:    form.NumGuests,
		CabinPrice:   data.CabinPrice,
		ExtrasPrice:  0,
		TotalPrice:   data.CabinPrice,
		Status:       models.StatusUnconfirmed,
		HasBreakfast: false,
		IsPaid:       false,
		Observations: models.TruncateObservations(form.Observations),
		CabinID:      data.CabinID,
		GuestID:      session.GuestID,
	}
	created, err := s.Store.CreateBooking(ctx, b)
	if err != nil {
		return Result{}, fmt.Errorf("booking %w: %w", models.ErrCreateFailed, err)
	}
	log.Printf("[booking] guest %s booked cabin %s %s..%s", session.GuestID, created.CabinID,
		created.StartDate.Format(DateLayout), created.EndDate.Format(DateLayout))

	s.revalidate(ctx, rdx.CabinView(created.CabinID), rdx.ReservationsView(session.GuestID))
	s.emit(ctx, mq.ActionCreated, created.CabinID, created.ID)
	return Result{Booking: &created, Redirect: RedirectThankYou}, nil
}

// ownedBooking loads a booking and checks it belongs to the guest. A booking that
// does not exist is reported as forbidden, the same as one owned by someone else.
func (s *Service) ownedBooking(ctx context.Context, guestID, bookingID string, failed error) (models.Booking, error) {
	b, err := s.Store.Booking(ctx, bookingID)
	if errors.Is(err, models.ErrNotFound) {
		return models.Booking{}, models.ErrForbidden
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("booking %w: %w", failed, err)
	}
	if b.GuestID != guestID {
		return models.Booking{}, models.ErrForbidden
	}
	return b, nil
}

// Update changes the guest count and observations of one of the guest's bookings.
func (s *Service) Update(ctx context.Context, session *auth.Session, form UpdateForm) (Result, error) {
	if session == nil || session.GuestID == "" {
		return Result{}, models.ErrUnauthorized
	}

	b, err := s.ownedBooking(ctx, session.GuestID, form.BookingID, models.ErrUpdateFailed)
	if err != nil {
		return Result{}, err
	}
	cabin, err := s.Store.Cabin(ctx, b.CabinID)
	if err != nil {
		return Result{}, fmt.Errorf("booking %w: cabin lookup: %w", models.ErrUpdateFailed, err)
	}
	settings, err := s.settings(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("booking %w: settings lookup: %w", models.ErrUpdateFailed, err)
	}
	if err := checkGuests(form.NumGuests, cabin, settings); err != nil {
		return Result{}, err
	}

	ok, err := s.Store.UpdateGuestBooking(ctx, form.BookingID, session.GuestID, models.BookingUpdate{
		NumGuests:    form.NumGuests,
		Observations: models.TruncateObservations(form.Observations),
	})
	if err != nil {
		return Result{}, fmt.Errorf("booking %w: %w", models.ErrUpdateFailed, err)
	}
	if !ok {
		return Result{}, models.ErrForbidden
	}

	s.revalidate(ctx, rdx.ReservationView(form.BookingID), rdx.ReservationsView(session.GuestID))
	s.emit(ctx, mq.ActionUpdated, b.CabinID, form.BookingID)
	return Result{Redirect: RedirectReservations}, nil
}

// Delete removes one of the guest's bookings. Deleting an id twice is forbidden the
// second time because it no longer belongs to anyone.
func (s *Service) Delete(ctx context.Context, session *auth.Session, bookingID string) error {
	if session == nil || session.GuestID == "" {
		return models.ErrUnauthorized
	}
	if bookingID == "" {
		return fmt.Errorf("%w: bookingId", models.ErrMissingFields)
	}

	b, err := s.ownedBooking(ctx, session.GuestID, bookingID, models.ErrDeleteFailed)
	if err != nil {
		return err
	}
	ok, err := s.Store.DeleteGuestBooking(ctx, bookingID, session.GuestID)
	if err != nil {
		return fmt.Errorf("booking %w: %w", models.ErrDeleteFailed, err)
	}
	if !ok {
		return models.ErrForbidden
	}
	log.Printf("[booking] guest %s deleted booking %s", session.GuestID, bookingID)

	s.revalidate(ctx, rdx.ReservationsView(session.GuestID), rdx.ReservationView(bookingID), rdx.CabinView(b.CabinID))
	s.emit(ctx, mq.ActionDeleted, b.CabinID, bookingID)
	return nil
}

// Reservations lists the guest's bookings by start date with cabin name and image.
func (s *Service) Reservations(ctx context.Context, session *auth.Session) ([]models.GuestBooking, error) {
	if session == nil || session.GuestID == "" {
		return nil, models.ErrUnauthorized
	}
	key := rdx.ReservationsView(session.GuestID)
	var list []models.GuestBooking
	if s.Views != nil {
		if hit, err := s.Views.Get(ctx, key, &list); err == nil && hit {
			return list, nil
		}
	}

	list, err := s.Store.GuestBookings(ctx, session.GuestID)
	if err != nil {
		return nil, fmt.Errorf("bookings %w: %w", models.ErrLoadFailed, err)
	}
	if s.Views != nil {
		if err := s.Views.Set(ctx, key, list, accountViewTTL); err != nil {
			log.Printf("[booking] cache %s: %v", key, err)
		}
	}
	return list, nil
}

// Reservation returns one of the guest's bookings for the edit view.
func (s *Service) Reservation(ctx context.Context, session *auth.Session, bookingID string) (models.Booking, error) {
	if session == nil || session.GuestID == "" {
		return models.Booking{}, models.ErrUnauthorized
	}
	key := rdx.ReservationView(bookingID)
	var b models.Booking
	if s.Views != nil {
		if hit, err := s.Views.Get(ctx, key, &b); err == nil && hit {
			if b.GuestID != session.GuestID {
				return models.Booking{}, models.ErrForbidden
			}
			return b, nil
		}
	}

	b, err := s.Store.Booking(ctx, bookingID)
	if errors.Is(err, models.ErrNotFound) {
		return models.Booking{}, fmt.Errorf("booking %w", models.ErrNotFound)
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("booking %w: %w", models.ErrLoadFailed, err)
	}
	if b.GuestID != session.GuestID {
		return models.Booking{}, models.ErrForbidden
	}
	if s.Views != nil {
		if err := s.Views.Set(ctx, key, b, accountViewTTL); err != nil {
			log.Printf("[booking] cache %s: %v", key, err)
		}
	}
	return b, nil
}

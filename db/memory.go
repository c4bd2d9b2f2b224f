package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"oasis/models"
)

// MemoryStore is a process-local Store for tests. Fail, when set,
// is consulted before every operation and its error returned as the driver error.
type MemoryStore struct {
	mu       sync.RWMutex
	cabins   map[string]models.Cabin
	guests   map[string]models.Guest
	bookings map[string]models.Booking
	settings *models.Settings
	contact  []models.ContactMessage

	Fail func(op string) error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cabins:   make(map[string]models.Cabin),
		guests:   make(map[string]models.Guest),
		bookings: make(map[string]models.Booking),
	}
}

func (m *MemoryStore) fail(op string) error {
	if m.Fail == nil {
		return nil
	}
	return m.Fail(op)
}

// PutCabin, PutGuest, PutBooking and PutSettings seed data.
func (m *MemoryStore) PutCabin(c models.Cabin) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cabins[c.ID] = c
}

func (m *MemoryStore) PutGuest(g models.Guest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guests[g.ID] = g
}

func (m *MemoryStore) PutBooking(b models.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = b
}

func (m *MemoryStore) PutSettings(s models.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = &s
}

// ContactMessages returns what CreateContactMessage stored.
func (m *MemoryStore) ContactMessages() []models.ContactMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.ContactMessage(nil), m.contact...)
}

func (m *MemoryStore) Close(context.Context) error { return nil }

func (m *MemoryStore) Cabins(context.Context) ([]models.Cabin, error) {
	if err := m.fail("Cabins"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	cabins := make([]models.Cabin, 0, len(m.cabins))
	for _, c := range m.cabins {
		c.Description = ""
		cabins = append(cabins, c)
	}
	sort.Slice(cabins, func(i, j int) bool { return cabins[i].Name < cabins[j].Name })
	return cabins, nil
}

func (m *MemoryStore) Cabin(_ context.Context, id string) (models.Cabin, error) {
	if err := m.fail("Cabin"); err != nil {
		return models.Cabin{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cabins[id]
	if !ok {
		return models.Cabin{}, models.ErrNotFound
	}
	return c, nil
}

func (m *MemoryStore) Settings(context.Context) (models.Settings, error) {
	if err := m.fail("Settings"); err != nil {
		return models.Settings{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.settings == nil {
		return models.Settings{}, models.ErrNotFound
	}
	return *m.settings, nil
}

func (m *MemoryStore) GuestByEmail(_ context.Context, email string) (models.Guest, error) {
	if err := m.fail("GuestByEmail"); err != nil {
		return models.Guest{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, g := range m.guests {
		if g.Email == email {
			return g, nil
		}
	}
	return models.Guest{}, models.ErrNotFound
}

func (m *MemoryStore) CreateGuest(_ context.Context, g models.Guest) error {
	if err := m.fail("CreateGuest"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guests[g.ID] = g
	return nil
}

func (m *MemoryStore) UpdateGuest(_ context.Context, guestID string, u models.GuestProfileUpdate) error {
	if err := m.fail("UpdateGuest"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.guests[guestID]
	if !ok {
		return models.ErrNotFound
	}
	g.Nationality = &u.Nationality
	g.CountryFlag = &u.CountryFlag
	g.NationalID = &u.NationalID
	m.guests[guestID] = g
	return nil
}

// Guest returns a guest by id; it is not part of Store.
func (m *MemoryStore) Guest(id string) (models.Guest, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.guests[id]
	return g, ok
}

func (m *MemoryStore) ActiveBookings(_ context.Context, cabinID string, since time.Time) ([]models.Booking, error) {
	if err := m.fail("ActiveBookings"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	bookings := []models.Booking{}
	for _, b := range m.bookings {
		if b.CabinID != cabinID {
			continue
		}
		if !b.StartDate.Before(since) || b.Status == models.StatusCheckedIn {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].StartDate.Before(bookings[j].StartDate) })
	return bookings, nil
}

func (m *MemoryStore) Booking(_ context.Context, id string) (models.Booking, error) {
	if err := m.fail("Booking"); err != nil {
		return models.Booking{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bookings[id]
	if !ok {
		return models.Booking{}, models.ErrNotFound
	}
	return b, nil
}

func (m *MemoryStore) GuestBookings(_ context.Context, guestID string) ([]models.GuestBooking, error) {
	if err := m.fail("GuestBookings"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := []models.GuestBooking{}
	for _, b := range m.bookings {
		if b.GuestID != guestID {
			continue
		}
		c := m.cabins[b.CabinID]
		list = append(list, models.GuestBooking{
			ID:         b.ID,
			CreatedAt:  b.CreatedAt,
			StartDate:  b.StartDate,
			EndDate:    b.EndDate,
			NumNights:  b.NumNights,
			NumGuests:  b.NumGuests,
			TotalPrice: b.TotalPrice,
			GuestID:    b.GuestID,
			CabinID:    b.CabinID,
			Cabin:      models.BookingCabin{Name: c.Name, Image: c.Image},
		})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].StartDate.Before(list[j].StartDate) })
	return list, nil
}

func (m *MemoryStore) CreateBooking(_ context.Context, b models.Booking) (models.Booking, error) {
	if err := m.fail("CreateBooking"); err != nil {
		return models.Booking{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = b
	return b, nil
}

func (m *MemoryStore) UpdateGuestBooking(_ context.Context, bookingID, guestID string, u models.BookingUpdate) (bool, error) {
	if err := m.fail("UpdateGuestBooking"); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok || b.GuestID != guestID {
		return false, nil
	}
	b.NumGuests = u.NumGuests
	b.Observations = u.Observations
	m.bookings[bookingID] = b
	return true, nil
}

func (m *MemoryStore) DeleteGuestBooking(_ context.Context, bookingID, guestID string) (bool, error) {
	if err := m.fail("DeleteGuestBooking"); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok || b.GuestID != guestID {
		return false, nil
	}
	delete(m.bookings, bookingID)
	return true, nil
}

func (m *MemoryStore) CreateContactMessage(_ context.Context, msg models.ContactMessage) error {
	if err := m.fail("CreateContactMessage"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contact = append(m.contact, msg)
	return nil
}

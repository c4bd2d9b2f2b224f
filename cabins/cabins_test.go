package cabins

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"oasis/auth"
	"oasis/booking"
	"oasis/db"
	"oasis/models"
	"oasis/rdx"

	"github.com/alicebob/miniredis/v2"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse(booking.DateLayout, s)
	return t
}

func newCatalogue(t *testing.T) (*Catalogue, *db.MemoryStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := db.NewMemoryStore()
	for _, c := range []models.Cabin{
		{ID: "c8", Name: "008", MaxCapacity: 10},
		{ID: "c1", Name: "001", MaxCapacity: 2, Description: "cosy"},
		{ID: "c4", Name: "004", MaxCapacity: 6},
	} {
		store.PutCabin(c)
	}
	store.PutSettings(models.Settings{MinBookingLength: 3, MaxBookingLength: 90, MaxGuestsPerBooking: 8})
	store.PutBooking(models.Booking{ID: "b1", CabinID: "c1", StartDate: day("2024-06-01"), EndDate: day("2024-06-03")})

	resolver := booking.NewResolver(store)
	resolver.Now = func() time.Time { return day("2024-05-01") }
	return NewCatalogue(store, resolver, rdx.NewViewCache(client)), store, mr
}

func names(list []models.Cabin) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Name
	}
	return out
}

func TestListCapacityFilter(t *testing.T) {
	c, _, _ := newCatalogue(t)
	ctx := context.Background()

	cases := map[models.CapacityFilter][]string{
		models.CapacityAll:    {"001", "004", "008"},
		models.CapacitySmall:  {"001"},
		models.CapacityMedium: {"004"},
		models.CapacityLarge:  {"008"},
		"bogus":               {"001", "004", "008"},
	}
	for filter, want := range cases {
		got, err := c.List(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, want, names(got), "filter %q", filter)
	}
}

func TestDetailCachedUntilRevalidated(t *testing.T) {
	c, store, mr := newCatalogue(t)
	ctx := context.Background()

	d, err := c.Detail(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "cosy", d.Cabin.Description)
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03"}, d.BookedDates)
	require.NotNil(t, d.Settings)
	assert.True(t, mr.Exists(rdx.CabinView("c1")))

	store.PutBooking(models.Booking{ID: "b2", CabinID: "c1", StartDate: day("2024-07-01"), EndDate: day("2024-07-01")})
	d, err = c.Detail(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, d.BookedDates, 3)

	require.NoError(t, c.Views.Revalidate(ctx, rdx.CabinView("c1")))
	d, err = c.Detail(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, d.BookedDates, 4)
}

func TestGetCabinHandler(t *testing.T) {
	c, store, _ := newCatalogue(t)
	h := NewHandlers(c)

	rec := httptest.NewRecorder()
	h.GetCabin(rec, httptest.NewRequest(http.MethodGet, "/api/cabins/nope", nil), httprouter.Params{{Key: "cabinId", Value: "nope"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"cabin not found"}`, rec.Body.String())

	store.Fail = func(string) error { return errors.New("down") }
	rec = httptest.NewRecorder()
	h.GetCabin(rec, httptest.NewRequest(http.MethodGet, "/api/cabins/c4", nil), httprouter.Params{{Key: "cabinId", Value: "c4"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetCabinHandlerCarriesSession(t *testing.T) {
	c, _, _ := newCatalogue(t)
	h := NewHandlers(c)
	params := httprouter.Params{{Key: "cabinId", Value: "c1"}}

	var body struct {
		Cabin   models.Cabin  `json:"cabin"`
		Session *auth.Session `json:"session"`
	}

	rec := httptest.NewRecorder()
	h.GetCabin(rec, httptest.NewRequest(http.MethodGet, "/api/cabins/c1", nil), params)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "001", body.Cabin.Name)
	assert.Nil(t, body.Session)

	req := httptest.NewRequest(http.MethodGet, "/api/cabins/c1", nil)
	req = req.WithContext(auth.WithSession(req.Context(), auth.Session{GuestID: "G1", Email: "ana@example.com", Name: "Ana"}, nil))
	rec = httptest.NewRecorder()
	h.GetCabin(rec, req, params)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Session)
	assert.Equal(t, "G1", body.Session.GuestID)
}

func TestBookedDatesHandler(t *testing.T) {
	c, _, _ := newCatalogue(t)
	rec := httptest.NewRecorder()
	NewHandlers(c).BookedDates(rec, httptest.NewRequest(http.MethodGet, "/api/cabins/c1/booked-dates", nil),
		httprouter.Params{{Key: "cabinId", Value: "c1"}})

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		BookedDates []string `json:"bookedDates"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03"}, body.BookedDates)
}

func TestListCabinsHandler(t *testing.T) {
	c, _, _ := newCatalogue(t)
	rec := httptest.NewRecorder()
	NewHandlers(c).ListCabins(rec, httptest.NewRequest(http.MethodGet, "/api/cabins?capacity=Large", nil), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Cabins []models.Cabin `json:"cabins"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, []string{"008"}, names(body.Cabins))
}

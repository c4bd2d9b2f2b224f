package profile

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"oasis/auth"
	"oasis/db"
	"oasis/models"
	"oasis/rdx"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var guest = &auth.Session{GuestID: "G1", Email: "g1@example.com", Name: "Guest One"}

func TestParseProfileForm(t *testing.T) {
	u, err := ParseProfileForm(url.Values{
		"nationality": {"Portugal%https://flagcdn.com/pt.svg"},
		"nationalID":  {"AB12345"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.GuestProfileUpdate{
		Nationality: "Portugal",
		CountryFlag: "https://flagcdn.com/pt.svg",
		NationalID:  "AB12345",
	}, u)
}

func TestParseProfileFormRejects(t *testing.T) {
	cases := map[string]url.Values{
		"no separator":   {"nationality": {"Portugal"}, "nationalID": {"AB12345"}},
		"empty flag":     {"nationality": {"Portugal%"}, "nationalID": {"AB12345"}},
		"empty country":  {"nationality": {"%https://flag"}, "nationalID": {"AB12345"}},
		"two separators": {"nationality": {"a%b%c"}, "nationalID": {"AB12345"}},
		"short id":       {"nationality": {"Portugal%f"}, "nationalID": {"AB123"}},
		"long id":        {"nationality": {"Portugal%f"}, "nationalID": {"ABCDEFGHIJKLM"}},
		"symbols in id":  {"nationality": {"Portugal%f"}, "nationalID": {"AB-12345"}},
		"missing id":     {"nationality": {"Portugal%f"}},
		"padded id":      {"nationality": {"Portugal%f"}, "nationalID": {" AB1234 "}},
	}
	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseProfileForm(v)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func newService(t *testing.T) (*Service, *db.MemoryStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := db.NewMemoryStore()
	store.PutGuest(models.Guest{ID: "G1", Email: "g1@example.com", FullName: "Guest One"})
	return NewService(store, rdx.NewViewCache(client)), store, mr
}

func TestUpdateWritesAndRevalidates(t *testing.T) {
	svc, store, mr := newService(t)
	ctx := context.Background()

	_, err := svc.Profile(ctx, guest)
	require.NoError(t, err)
	require.True(t, mr.Exists(rdx.ProfileView("G1")))

	require.NoError(t, svc.Update(ctx, guest, models.GuestProfileUpdate{Nationality: "Portugal", CountryFlag: "pt.svg", NationalID: "AB12345"}))
	assert.False(t, mr.Exists(rdx.ProfileView("G1")))

	g, ok := store.Guest("G1")
	require.True(t, ok)
	require.NotNil(t, g.NationalID)
	assert.Equal(t, "AB12345", *g.NationalID)

	fresh, err := svc.Profile(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, "Portugal", *fresh.Nationality)
}

func TestUpdateErrors(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Update(ctx, nil, models.GuestProfileUpdate{}), models.ErrUnauthorized)

	store.Fail = func(string) error { return errors.New("down") }
	assert.ErrorIs(t, svc.Update(ctx, guest, models.GuestProfileUpdate{NationalID: "AB12345"}), models.ErrUpdateFailed)
}

func TestUpdateProfileHandlerValidatesBeforeWriting(t *testing.T) {
	svc, store, _ := newService(t)
	h := NewHandlers(svc)

	form := url.Values{"nationality": {"Portugal"}, "nationalID": {"AB12345"}}
	req := httptest.NewRequest(http.MethodPost, "/api/account/profile", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(auth.WithSession(req.Context(), *guest, nil))
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, req, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	g, _ := store.Guest("G1")
	assert.Nil(t, g.Nationality)
}

func TestUpdateProfileHandlerMissingGuestRow(t *testing.T) {
	svc, _, _ := newService(t)
	h := NewHandlers(svc)

	form := url.Values{"nationality": {"Portugal%https://flagcdn.com/pt.svg"}, "nationalID": {"AB12345"}}
	req := httptest.NewRequest(http.MethodPost, "/api/account/profile", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(auth.WithSession(req.Context(), auth.Session{GuestID: "G9", Email: "g9@example.com"}, nil))
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, req, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"`+models.ErrUpdateFailed.Error()+`"}`, rec.Body.String())
}

func TestProfileHandlerNeedsSession(t *testing.T) {
	svc, _, _ := newService(t)
	rec := httptest.NewRecorder()
	NewHandlers(svc).GetProfile(rec, httptest.NewRequest(http.MethodGet, "/api/account/profile", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

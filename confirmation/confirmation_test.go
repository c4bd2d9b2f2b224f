package confirmation

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"oasis/auth"
	"oasis/booking"
	"oasis/db"
	"oasis/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var b1 = models.Booking{
	ID: "B1", CabinID: "C1", GuestID: "G1",
	StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	EndDate:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
	NumNights: 3, NumGuests: 2, TotalPrice: 300, Status: models.StatusUnconfirmed,
}

func TestSignerRoundTrip(t *testing.T) {
	s, err := NewSigner([]byte("secret"))
	require.NoError(t, err)

	payload := s.Payload(b1)
	id, ok := s.Verify(payload)
	assert.True(t, ok)
	assert.Equal(t, "B1", id)

	_, ok = s.Verify(strings.Replace(payload, "B1", "B2", 1))
	assert.False(t, ok)

	other, err := NewSigner([]byte("other"))
	require.NoError(t, err)
	_, ok = other.Verify(payload)
	assert.False(t, ok)
}

func TestRenderProducesPDF(t *testing.T) {
	s, err := NewSigner([]byte("secret"))
	require.NoError(t, err)

	out, err := Render(b1, models.Cabin{ID: "C1", Name: "001"}, "Ana", s.Payload(b1))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestDownloadOwnerOnly(t *testing.T) {
	store := db.NewMemoryStore()
	store.PutCabin(models.Cabin{ID: "C1", Name: "001", MaxCapacity: 4})
	store.PutBooking(b1)
	signer, err := NewSigner([]byte("secret"))
	require.NoError(t, err)
	h := NewHandlers(booking.NewService(store, nil, nil), store, signer)
	ps := httprouter.Params{{Key: "bookingId", Value: "B1"}}

	get := func(s auth.Session) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/account/reservations/B1/confirmation", nil)
		req = req.WithContext(auth.WithSession(req.Context(), s, nil))
		rec := httptest.NewRecorder()
		h.Download(rec, req, ps)
		return rec
	}

	rec := get(auth.Session{GuestID: "G1", Name: "Ana"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	rec = get(auth.Session{GuestID: "G2", Name: "Bo"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestVerifyHandler(t *testing.T) {
	signer, err := NewSigner([]byte("secret"))
	require.NoError(t, err)
	h := &Handlers{Signer: signer}

	rec := httptest.NewRecorder()
	body := `{"code":"` + signer.Payload(b1) + `"}`
	h.Verify(rec, httptest.NewRequest(http.MethodPost, "/api/confirmations/verify", strings.NewReader(body)), nil)
	assert.JSONEq(t, `{"valid":true,"bookingId":"B1"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Verify(rec, httptest.NewRequest(http.MethodPost, "/api/confirmations/verify", strings.NewReader(`{"code":"B1|C1|2024-06-01|forged"}`)), nil)
	assert.JSONEq(t, `{"valid":false}`, rec.Body.String())
}

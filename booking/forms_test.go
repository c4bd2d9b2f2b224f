package booking

import (
	"net/url"
	"strings"
	"testing"

	"oasis/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCreateForm(t *testing.T) {
	f, err := ParseCreateForm(url.Values{"numGuests": {"2"}, "observations": {"late arrival"}})
	require.NoError(t, err)
	assert.Equal(t, CreateForm{NumGuests: 2, Observations: "late arrival"}, f)

	_, err = ParseCreateForm(url.Values{})
	assert.ErrorIs(t, err, models.ErrMissingFields)

	_, err = ParseCreateForm(url.Values{"numGuests": {"two"}})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestParseCreateFormTruncatesObservations(t *testing.T) {
	f, err := ParseCreateForm(url.Values{"numGuests": {"1"}, "observations": {strings.Repeat("é", 1500)}})
	require.NoError(t, err)
	assert.Equal(t, models.MaxObservationsLength, len([]rune(f.Observations)))
}

func TestParseUpdateForm(t *testing.T) {
	f, err := ParseUpdateForm(url.Values{"bookingId": {"B1"}, "numGuests": {"2"}, "observations": {"ok"}})
	require.NoError(t, err)
	assert.Equal(t, UpdateForm{BookingID: "B1", NumGuests: 2, Observations: "ok"}, f)

	f, err = ParseUpdateForm(url.Values{"bookingId": {"B1"}, "numGuests": {"2"}, "observations": {""}})
	require.NoError(t, err)
	assert.Empty(t, f.Observations)

	for _, v := range []url.Values{
		{"numGuests": {"2"}, "observations": {"ok"}},
		{"bookingId": {"B1"}, "observations": {"ok"}},
		{"bookingId": {"B1"}, "numGuests": {"2"}},
	} {
		_, err := ParseUpdateForm(v)
		assert.ErrorIs(t, err, models.ErrMissingFields)
	}

	_, err = ParseUpdateForm(url.Values{"bookingId": {"B1"}, "numGuests": {"2.5"}, "observations": {""}})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestParseDraftRequest(t *testing.T) {
	req, err := ParseDraftRequest(url.Values{"cabinId": {"C1"}, "startDate": {"2024-06-01"}, "endDate": {"2024-06-04"}})
	require.NoError(t, err)
	assert.Equal(t, DraftRequest{CabinID: "C1", From: day("2024-06-01"), To: day("2024-06-04")}, req)

	req, err = ParseDraftRequest(url.Values{"cabinId": {"C1"}})
	require.NoError(t, err)
	assert.True(t, req.From.IsZero())

	_, err = ParseDraftRequest(url.Values{"startDate": {"2024-06-01"}})
	assert.ErrorIs(t, err, models.ErrMissingFields)

	_, err = ParseDraftRequest(url.Values{"cabinId": {"C1"}, "startDate": {"soon"}})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

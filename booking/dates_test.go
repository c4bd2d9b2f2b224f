package booking

import (
	"testing"
	"time"

	"oasis/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestEachDayInclusive(t *testing.T) {
	got := EachDay(day("2024-06-01"), day("2024-06-03"))
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03"}, FormatDays(got))

	assert.Len(t, EachDay(day("2024-06-01"), day("2024-06-01")), 1)
	assert.Empty(t, EachDay(day("2024-06-03"), day("2024-06-01")))
}

func TestEachDayAcrossMonthEnd(t *testing.T) {
	got := EachDay(day("2024-02-28"), day("2024-03-01"))
	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, FormatDays(got))
}

func TestDayNormalisesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	got := Day(time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC).In(loc))
	assert.Equal(t, day("2024-06-01"), got)
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, day("2024-06-01"), d)

	d, err = ParseDay("2024-06-01T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, day("2024-06-01"), d)

	_, err = ParseDay("June 1st")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 3, DaysBetween(day("2024-06-01"), day("2024-06-04")))
	assert.Equal(t, 0, DaysBetween(day("2024-06-01"), day("2024-06-01")))
}

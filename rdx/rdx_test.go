package rdx

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

type cabinView struct {
	Name        string   `json:"name"`
	BookedDates []string `json:"bookedDates"`
}

func TestViewCacheRoundTripAndRevalidate(t *testing.T) {
	ctx := context.Background()
	_, client := newClient(t)
	cache := NewViewCache(client)

	var got cabinView
	hit, err := cache.Get(ctx, CabinView("c1"), &got)
	require.NoError(t, err)
	assert.False(t, hit)

	want := cabinView{Name: "001", BookedDates: []string{"2024-06-01"}}
	require.NoError(t, cache.Set(ctx, CabinView("c1"), want, time.Hour))

	hit, err = cache.Get(ctx, CabinView("c1"), &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)

	require.NoError(t, cache.Revalidate(ctx, CabinView("c1"), ReservationsView("g1")))
	hit, err = cache.Get(ctx, CabinView("c1"), &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestViewCacheDropsUnreadableValue(t *testing.T) {
	ctx := context.Background()
	mr, client := newClient(t)
	cache := NewViewCache(client)
	require.NoError(t, mr.Set(ProfileView("g1"), "{not json"))

	var dst map[string]any
	hit, err := cache.Get(ctx, ProfileView("g1"), &dst)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, mr.Exists(ProfileView("g1")))
}

func TestRevocations(t *testing.T) {
	ctx := context.Background()
	mr, client := newClient(t)
	rev := NewRevocations(client)

	revoked, err := rev.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, rev.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = rev.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, rev.Revoke(ctx, "jti-old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists(revokedKey("jti-old")))

	mr.FastForward(2 * time.Hour)
	revoked, err = rev.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

package cache

import (
	"context"
	"testing"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) *RedisVenueCache {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisVenueCache(mr.Addr())
	require.NoError(t, err)
	return c
}

func TestRedisVenueCacheRoundTrip(t *testing.T) {
	c := newRedisCache(t)
	ctx := context.Background()

	want := ports.VenueResults{
		Primary: domain.Venue{Name: "Cafe Riva", Address: "1 River Walk", Rating: 4.5},
		Alternatives: []domain.Venue{
			{Name: "Bean There", Categories: []string{"cafe"}},
		},
	}

	require.NoError(t, c.Put(ctx, "coffee|51.510,-0.120", want))

	got, hit, err := c.Get(ctx, "coffee|51.510,-0.120")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, want, got)
}

func TestRedisVenueCacheMiss(t *testing.T) {
	c := newRedisCache(t)

	_, hit, err := c.Get(context.Background(), "nothing here")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisVenueCacheEmptyKey(t *testing.T) {
	c := newRedisCache(t)
	ctx := context.Background()

	_, _, err := c.Get(ctx, "  ")
	assert.Error(t, err)
	assert.Error(t, c.Put(ctx, "", ports.VenueResults{}))
}

func TestNewRedisVenueCacheEmptyAddr(t *testing.T) {
	_, err := NewRedisVenueCache(" ")
	assert.Error(t, err)
}

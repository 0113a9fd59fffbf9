package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestLeadThrottleLimitsWithinWindow(t *testing.T) {
	mr, client := newTestRedis(t)
	throttle := NewLeadThrottle(client, 2, time.Minute)
	ctx := context.Background()

	for i := range 2 {
		ok, err := throttle.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, ok, "submission %d", i+1)
	}
	ok, err := throttle.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = throttle.Allow(ctx, "198.51.100.1")
	require.NoError(t, err)
	assert.True(t, ok, "other clients are counted separately")

	mr.FastForward(time.Minute + time.Second)
	ok, err = throttle.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, ok, "window expired")
}

func TestLeadThrottleWindowStartsAtFirstSubmission(t *testing.T) {
	mr, client := newTestRedis(t)
	throttle := NewLeadThrottle(client, 5, time.Minute)
	ctx := context.Background()

	_, err := throttle.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("leads:throttle:203.0.113.7"))

	mr.FastForward(40 * time.Second)
	_, err = throttle.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, mr.TTL("leads:throttle:203.0.113.7"))
}

func TestLeadThrottleRepairsCounterWithoutTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	throttle := NewLeadThrottle(client, 1, time.Minute)
	require.NoError(t, mr.Set("leads:throttle:198.51.100.4", "1"))

	ok, err := throttle.Allow(context.Background(), "198.51.100.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("leads:throttle:198.51.100.4"))

	mr.FastForward(time.Minute + time.Second)
	ok, err = throttle.Allow(context.Background(), "198.51.100.4")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLeadThrottleFailsOpen(t *testing.T) {
	mr, client := newTestRedis(t)
	throttle := NewLeadThrottle(client, 1, time.Minute)
	mr.Close()

	ok, err := throttle.Allow(context.Background(), "203.0.113.7")
	assert.Error(t, err)
	assert.True(t, ok)
}

func TestLeadThrottleDisabled(t *testing.T) {
	var nilThrottle *LeadThrottle
	ok, err := nilThrottle.Allow(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = NewLeadThrottle(nil, 5, time.Minute).Allow(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, ok)
}

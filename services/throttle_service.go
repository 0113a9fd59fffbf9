package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttleKeyPrefix = "leads:throttle:"

// LeadThrottle caps lead submissions per client within a fixed window using
// a Redis counter. A nil client or zero limit disables it.
type LeadThrottle struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewLeadThrottle(client *redis.Client, limit int, window time.Duration) *LeadThrottle {
	return &LeadThrottle{client: client, limit: limit, window: window}
}

// Allow counts one submission for key. INCR and EXPIRE NX run in one
// transaction, so a counter never outlives its window. On Redis errors it
// allows the submission and returns the error for logging.
func (t *LeadThrottle) Allow(ctx context.Context, key string) (bool, error) {
	if t == nil || t.client == nil || t.limit <= 0 {
		return true, nil
	}
	k := throttleKeyPrefix + key
	var incr *redis.IntCmd
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, t.window)
		return nil
	})
	if err != nil {
		return true, fmt.Errorf("throttle %s: %w", k, err)
	}
	n := incr.Val()
	return n <= int64(t.limit), nil
}

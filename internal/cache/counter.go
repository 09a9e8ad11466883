// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// counterKeyPrefix is the Valkey key prefix for rate limit windows.
const counterKeyPrefix = "ratelimit:"

// WindowCounter allows at most limit hits per key in each fixed window.
// Counts live in Valkey so every instance shares them.
type WindowCounter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewWindowCounter creates a counter allowing limit hits per window.
func NewWindowCounter(client *redis.Client, limit int, window time.Duration) *WindowCounter {
	return &WindowCounter{client: client, limit: limit, window: window, now: time.Now}
}

// Allow records a hit for key and reports whether it is within the limit.
func (c *WindowCounter) Allow(ctx context.Context, key string) (bool, error) {
	slot := c.now().UnixNano() / int64(c.window)
	k := counterKeyPrefix + key + ":" + strconv.FormatInt(slot, 10)

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, c.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate counter %s: %w", key, err)
	}
	return incr.Val() <= int64(c.limit), nil
}

// Package ratelimit counts actions per subject in fixed Redis windows.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "fefu:rate_limit"

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// Result is the outcome of one Consume call.
type Result struct {
	Allowed    bool
	Count      int
	Limit      int
	RetryAfter time.Duration
}

// Limiter is a fixed-window counter shared by every instance of the
// service through Redis.
type Limiter struct {
	client redis.UniversalClient
	prefix string
}

// New creates a Limiter. An empty prefix falls back to "fefu:rate_limit".
func New(client redis.UniversalClient, prefix string) *Limiter {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Limiter{client: client, prefix: prefix}
}

// Consume counts one action of subject within scope. A non-positive limit
// or window disables limiting.
func (l *Limiter) Consume(ctx context.Context, scope, subject string, limit int, window time.Duration) (Result, error) {
	if l == nil || l.client == nil || limit <= 0 || window <= 0 {
		return Result{Allowed: true, Limit: limit}, nil
	}

	windowMs := max(window.Milliseconds(), 1000)
	key := fmt.Sprintf("%s:%s:%s", l.prefix, scope, subject)

	raw, err := fixedWindowScript.Run(ctx, l.client, []string{key}, windowMs).Result()
	if err != nil {
		return Result{}, fmt.Errorf("running rate limit script: %w", err)
	}

	values, ok := raw.([]interface{})
	if !ok || len(values) != 2 {
		return Result{}, fmt.Errorf("unexpected rate limiter response shape: %T", raw)
	}
	count, ok := values[0].(int64)
	if !ok {
		return Result{}, fmt.Errorf("unexpected rate limiter count type: %T", values[0])
	}
	ttlMs, ok := values[1].(int64)
	if !ok || ttlMs < 0 {
		ttlMs = windowMs
	}

	retryAfter := time.Duration(math.Ceil(float64(ttlMs)/1000.0)) * time.Second

	return Result{
		Allowed:    int(count) <= limit,
		Count:      int(count),
		Limit:      limit,
		RetryAfter: max(retryAfter, time.Second),
	}, nil
}

package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// KEYS[1] current bucket, KEYS[2] previous bucket, ARGV[1] bucket TTL in ms.
var slidingWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local previous = tonumber(redis.call("GET", KEYS[2]) or "0")
return {current, previous}
`)

// RedisLimiter keeps window buckets in Redis so every server instance shares
// the same counters.
type RedisLimiter struct {
	client redis.Scripter
	prefix string
	window
	now func() time.Time
}

func NewRedisLimiter(client redis.Scripter, prefix string, limit int, size time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		window: window{limit: limit, size: size},
		now:    time.Now,
	}
}

func (l *RedisLimiter) key(id string, idx int64) string {
	return "ratelimit:" + l.prefix + ":" + id + ":" + strconv.FormatInt(idx, 10)
}

func (l *RedisLimiter) Limit(ctx context.Context, id string) (Result, error) {
	idx, elapsed := l.bucket(l.now())

	keys := []string{l.key(id, idx), l.key(id, idx-1)}
	ttl := (2 * l.size).Milliseconds()

	vals, err := slidingWindowScript.Run(ctx, l.client, keys, ttl).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit script: %w", err)
	}
	if len(vals) != 2 {
		return Result{}, fmt.Errorf("ratelimit script: unexpected reply %v", vals)
	}

	return l.result(idx, elapsed, vals[0], vals[1]), nil
}

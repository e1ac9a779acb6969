package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/logging"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWindow = 30 * time.Second

// bucketStart is aligned to a 30s boundary so elapsed starts at zero.
var bucketStart = time.UnixMilli(1_700_000_010_000)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newRedisLimiter(t *testing.T, c *clock) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLimiter(client, "api", 10, testWindow)
	l.now = c.now
	return l, mr
}

func newMemoryLimiter(c *clock) *MemoryLimiter {
	l := NewMemoryLimiter(10, testWindow)
	l.now = c.now
	return l
}

func limiters(t *testing.T, c *clock) map[string]Limiter {
	r, _ := newRedisLimiter(t, c)
	return map[string]Limiter{
		"redis":  r,
		"memory": newMemoryLimiter(c),
	}
}

func TestLimit_EleventhRequestRejected(t *testing.T) {
	c := &clock{t: bucketStart}
	for name, l := range limiters(t, c) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 1; i <= 10; i++ {
				res, err := l.Limit(ctx, "10.0.0.1")
				require.NoError(t, err)
				assert.True(t, res.Success, "request %d", i)
				assert.Equal(t, 10-i, res.Remaining)
			}

			res, err := l.Limit(ctx, "10.0.0.1")
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Equal(t, 0, res.Remaining)
			assert.Equal(t, bucketStart.Add(testWindow).UnixMilli(), res.Reset.UnixMilli())

			other, err := l.Limit(ctx, "10.0.0.2")
			require.NoError(t, err)
			assert.True(t, other.Success)
		})
	}
}

func TestLimit_WindowSlides(t *testing.T) {
	for _, name := range []string{"redis", "memory"} {
		t.Run(name, func(t *testing.T) {
			c := &clock{t: bucketStart}
			l := limiters(t, c)[name]
			ctx := context.Background()

			for i := 0; i < 10; i++ {
				_, err := l.Limit(ctx, "ip")
				require.NoError(t, err)
			}

			// Next bucket, halfway: previous 10 weighted by 0.5 plus this call.
			c.t = bucketStart.Add(testWindow + testWindow/2)
			for i := 0; i < 5; i++ {
				res, err := l.Limit(ctx, "ip")
				require.NoError(t, err)
				assert.True(t, res.Success, "request %d", i)
			}
			res, err := l.Limit(ctx, "ip")
			require.NoError(t, err)
			assert.False(t, res.Success)

			// Two full windows later nothing counts any more.
			c.t = bucketStart.Add(3 * testWindow)
			res, err = l.Limit(ctx, "ip")
			require.NoError(t, err)
			assert.True(t, res.Success)
		})
	}
}

func TestRedisLimiter_CountsRejectedCalls(t *testing.T) {
	c := &clock{t: bucketStart}
	l, mr := newRedisLimiter(t, c)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := l.Limit(ctx, "ip")
		require.NoError(t, err)
	}

	idx, _ := l.bucket(c.t)
	got, err := mr.Get(l.key("ip", idx))
	require.NoError(t, err)
	assert.Equal(t, "12", got)
	assert.Equal(t, 2*testWindow, mr.TTL(l.key("ip", idx)))
}

func TestRedisLimiter_StoreDown(t *testing.T) {
	c := &clock{t: bucketStart}
	l, mr := newRedisLimiter(t, c)
	mr.Close()

	_, err := l.Limit(context.Background(), "ip")
	assert.Error(t, err)
}

func TestMemoryLimiter_Prunes(t *testing.T) {
	c := &clock{t: bucketStart}
	l := newMemoryLimiter(c)
	ctx := context.Background()

	_, _ = l.Limit(ctx, "stale")
	c.t = bucketStart.Add(5 * testWindow)
	for i := 0; i < pruneEvery; i++ {
		_, _ = l.Limit(ctx, "fresh")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.counters, "stale")
	assert.Contains(t, l.counters, "fresh")
}

type stubLimiter struct {
	res Result
	err error
}

func (s stubLimiter) Limit(context.Context, string) (Result, error) { return s.res, s.err }

func TestGuard_Check(t *testing.T) {
	ctx := context.Background()

	g := NewGuard(stubLimiter{res: Result{Success: true}}, logging.Nop{})
	assert.NoError(t, g.Check(ctx, "ip"))

	g = NewGuard(stubLimiter{res: Result{Success: false, Reset: bucketStart}}, logging.Nop{})
	assert.ErrorIs(t, g.Check(ctx, "ip"), common.ErrorRateLimited)

	g = NewGuard(stubLimiter{err: errors.New("redis down")}, logging.Nop{})
	assert.NoError(t, g.Check(ctx, "ip"))
}

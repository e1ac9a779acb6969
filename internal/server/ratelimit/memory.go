package ratelimit

import (
	"context"
	"sync"
	"time"
)

const pruneEvery = 1024

type counter struct {
	bucket   int64
	current  int64
	previous int64
}

// MemoryLimiter is the single-process variant of RedisLimiter.
type MemoryLimiter struct {
	window
	now func() time.Time

	mu       sync.Mutex
	counters map[string]*counter
	calls    int
}

func NewMemoryLimiter(limit int, size time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		window:   window{limit: limit, size: size},
		now:      time.Now,
		counters: make(map[string]*counter),
	}
}

func (l *MemoryLimiter) Limit(_ context.Context, id string) (Result, error) {
	idx, elapsed := l.bucket(l.now())

	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls++
	if l.calls%pruneEvery == 0 {
		l.prune(idx)
	}

	c, ok := l.counters[id]
	switch {
	case !ok:
		c = &counter{bucket: idx}
		l.counters[id] = c
	case c.bucket == idx-1:
		c.previous, c.current, c.bucket = c.current, 0, idx
	case c.bucket < idx-1:
		c.previous, c.current, c.bucket = 0, 0, idx
	}
	c.current++

	return l.result(idx, elapsed, c.current, c.previous), nil
}

// prune drops counters that no longer contribute to any window.
func (l *MemoryLimiter) prune(idx int64) {
	for id, c := range l.counters {
		if c.bucket < idx-1 {
			delete(l.counters, id)
		}
	}
}

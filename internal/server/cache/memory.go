package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type entry struct {
	value   []byte
	expires time.Time
}

// MemoryStore is a bounded in-process LRU. The LRU evicts after maxTTL;
// shorter per-entry TTLs are enforced on read.
type MemoryStore struct {
	lru *expirable.LRU[string, entry]
	now func() time.Time
}

func NewMemoryStore(size int, maxTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		lru: expirable.NewLRU[string, entry](size, nil, maxTTL),
		now: time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := s.lru.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		s.lru.Remove(key)
		return nil, ErrMiss
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}
	s.lru.Add(key, e)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		s.lru.Remove(k)
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Len() int {
	return s.lru.Len()
}

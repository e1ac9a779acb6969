package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/paperkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}
func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}
func (brokenStore) Delete(context.Context, ...string) error { return errors.New("connection refused") }
func (brokenStore) Ping(context.Context) error              { return errors.New("connection refused") }

func TestKeys(t *testing.T) {
	assert.Equal(t, "category:u1", CategoryListKey("u1"))
	assert.Equal(t, "user:u1:category:c9", CategoryKey("u1", "c9"))
}

func TestAccessor_WriteRead(t *testing.T) {
	a := NewAccessor(NewMemoryStore(10, time.Hour), time.Minute, logging.Nop{})
	ctx := context.Background()

	a.Write(ctx, "k", snapshot{ID: "1", Name: "ML"})

	var got snapshot
	require.True(t, a.Read(ctx, "k", &got))
	assert.Equal(t, snapshot{ID: "1", Name: "ML"}, got)
}

func TestAccessor_CorruptEntryIsDroppedAndMissed(t *testing.T) {
	store := NewMemoryStore(10, time.Hour)
	a := NewAccessor(store, time.Minute, logging.Nop{})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("{not json"), time.Minute))

	var got snapshot
	assert.False(t, a.Read(ctx, "k", &got))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestAccessor_StoreFailuresAreMisses(t *testing.T) {
	a := NewAccessor(brokenStore{}, time.Minute, logging.Nop{})
	ctx := context.Background()

	var got snapshot
	assert.False(t, a.Read(ctx, "k", &got))
	a.Write(ctx, "k", snapshot{ID: "1"})
	assert.Error(t, a.Invalidate(ctx, "k"))
	assert.Error(t, a.Ping(ctx))
}

func TestReadThrough_LoadsOnceThenHits(t *testing.T) {
	a := NewAccessor(NewMemoryStore(10, time.Hour), time.Minute, logging.Nop{})
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]snapshot, error) {
		calls++
		return []snapshot{{ID: "1", Name: "ML"}}, nil
	}

	first, err := ReadThrough(ctx, a, "list", load)
	require.NoError(t, err)
	second, err := ReadThrough(ctx, a, "list", load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestReadThrough_ErrorIsNotCached(t *testing.T) {
	a := NewAccessor(NewMemoryStore(10, time.Hour), time.Minute, logging.Nop{})
	ctx := context.Background()

	boom := errors.New("not found")
	calls := 0
	load := func(context.Context) (*snapshot, error) {
		calls++
		return nil, boom
	}

	_, err := ReadThrough(ctx, a, "k", load)
	assert.ErrorIs(t, err, boom)
	_, err = ReadThrough(ctx, a, "k", load)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestReadThrough_InvalidateForcesReload(t *testing.T) {
	a := NewAccessor(NewMemoryStore(10, time.Hour), time.Minute, logging.Nop{})
	ctx := context.Background()

	name := "old"
	load := func(context.Context) (snapshot, error) { return snapshot{Name: name}, nil }

	got, _ := ReadThrough(ctx, a, "k", load)
	assert.Equal(t, "old", got.Name)

	name = "new"
	require.NoError(t, a.Invalidate(ctx, "k"))
	got, _ = ReadThrough(ctx, a, "k", load)
	assert.Equal(t, "new", got.Name)
}

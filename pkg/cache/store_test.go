package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "k1", payload{Name: "PETR4", Score: 72.5}, time.Minute))

	var got payload
	hit, err := s.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Name: "PETR4", Score: 72.5}, got)
}

func TestMemoryStoreMiss(t *testing.T) {
	var got payload
	hit, err := NewMemoryStore().Get(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	clock := time.Now()
	s.now = func() time.Time { return clock }

	require.NoError(t, s.Set(ctx, "k1", payload{Name: "VALE3"}, time.Hour))

	var got payload
	hit, err := s.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.True(t, hit)

	clock = clock.Add(2 * time.Hour)
	hit, err = s.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.False(t, hit, "entry past TTL")
	assert.Zero(t, s.Len(), "expired entry evicted on read")
}

func TestMemoryStoreDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, s.Set(ctx, "b", 2, time.Minute))

	require.NoError(t, s.Delete(ctx, "a"))
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Clear(ctx))
	assert.Zero(t, s.Len())
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "catalog:courses")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "catalog:courses", []byte("[]"), time.Minute))
	v, ok, err := m.Get(ctx, "catalog:courses")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("[]"), v)

	require.NoError(t, m.Delete(ctx, "catalog:courses"))
	_, ok, _ = m.Get(ctx, "catalog:courses")
	assert.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Second))
	now = now.Add(2 * time.Second)

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryDeletePrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "catalog:course:1", []byte("a"), 0))
	require.NoError(t, m.Set(ctx, "catalog:course:2", []byte("b"), 0))
	require.NoError(t, m.Set(ctx, "session:1", []byte("c"), 0))

	require.NoError(t, m.DeletePrefix(ctx, "catalog:"))

	_, ok, _ := m.Get(ctx, "catalog:course:1")
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "session:1")
	assert.True(t, ok)
}

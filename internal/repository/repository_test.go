package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	s := domain.Session{Token: "t1", Username: "admin", Role: domain.RoleSuperAdmin, CreatedAt: time.Now()}

	require.NoError(t, store.Create(ctx, s))
	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, s, got)

	require.NoError(t, store.Delete(ctx, "t1"))
	_, err = store.Get(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2025, 12, 17, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Create(ctx, domain.Session{Token: "t", CreatedAt: now}))
	_, err := store.Get(ctx, "t")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "t")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	_, err := NewMemoryStore(0).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

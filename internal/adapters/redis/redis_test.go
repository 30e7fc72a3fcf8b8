package redisad

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petasare/internal/domain"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestCache_SetGetDel(t *testing.T) {
	mr, c := newClient(t)
	cache := NewWithClient(c)
	ctx := context.Background()

	require.NoError(t, cache.Ping(ctx))

	var got domain.Hotel
	ok, err := cache.Get(ctx, "hotel:1", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "hotel:1", domain.Hotel{ID: 1, Name: "Hotel Harmoni", Category: domain.Star3}, 60))
	assert.True(t, mr.Exists("petasare:cache:hotel:1"))

	ok, err = cache.Get(ctx, "hotel:1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Hotel Harmoni", got.Name)
	assert.Equal(t, domain.Star3, got.Category)

	mr.FastForward(61 * time.Second)
	ok, err = cache.Get(ctx, "hotel:1", &got)
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire")

	require.NoError(t, cache.Set(ctx, "hotel:2", domain.Hotel{ID: 2, Category: domain.Star1}, 60))
	require.NoError(t, cache.Del(ctx, "hotel:2"))
	assert.False(t, mr.Exists("petasare:cache:hotel:2"))
}

func TestCache_GetServerDown(t *testing.T) {
	mr, c := newClient(t)
	cache := NewWithClient(c)
	mr.Close()

	var dst map[string]any
	_, err := cache.Get(context.Background(), "k", &dst)
	assert.Error(t, err)
}

func TestKV_RoundTripAndNotFound(t *testing.T) {
	mr, c := newClient(t)
	ctx := context.Background()
	kv := NewKV(c, "phone")

	_, err := kv.Get(ctx, "hotelBookmarks")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, kv.Put(ctx, "hotelBookmarks", []byte("[1,2]")))
	got, err := kv.Get(ctx, "hotelBookmarks")
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", string(got))
	assert.True(t, mr.Exists("petasare:kv:phone:hotelBookmarks"))

	// devices do not see each other's keys
	_, err = NewKV(c, "tablet").Get(ctx, "hotelBookmarks")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

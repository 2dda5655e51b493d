package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

// exerciseCache runs the same contract against every Cache implementation.
func exerciseCache(t *testing.T, c Cache) {
	ctx := context.Background()
	sid := NewID()

	_, ok, err := c.Get(ctx, sid, "health_form_data")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, sid, "health_form_data", `{"zip":"02421"}`))
	val, ok, err := c.Get(ctx, sid, "health_form_data")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"zip":"02421"}`, val)

	// other sessions are isolated
	_, ok, err = c.Get(ctx, NewID(), "health_form_data")
	require.NoError(t, err)
	assert.False(t, ok)

	claimed, err := c.SetNX(ctx, sid, "health_arrival_claim", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, claimed)
	claimed, err = c.SetNX(ctx, sid, "health_arrival_claim", "1", time.Minute)
	require.NoError(t, err)
	assert.False(t, claimed)

	require.NoError(t, c.Delete(ctx, sid, "health_form_data", "health_arrival_claim"))
	_, ok, _ = c.Get(ctx, sid, "health_form_data")
	assert.False(t, ok)
	claimed, _ = c.SetNX(ctx, sid, "health_arrival_claim", "1", time.Minute)
	assert.True(t, claimed)

	_, _, err = c.Get(ctx, "", "health_form_data")
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.ErrorIs(t, c.Set(ctx, "", "k", "v"), ErrInvalidSession)
}

func TestRedisCache_Contract(t *testing.T) {
	client, _ := setupRedis(t)
	exerciseCache(t, NewRedisCache(client, time.Hour))
}

func TestMemoryCache_Contract(t *testing.T) {
	exerciseCache(t, NewMemoryCache(time.Hour))
}

func TestRedisCache_TTL(t *testing.T) {
	client, mr := setupRedis(t)
	c := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "sid", "medicare_form_data", "{}"))
	assert.Equal(t, time.Minute, mr.TTL("hqh:session:sid:medicare_form_data"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := c.Get(ctx, "sid", "medicare_form_data")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_Errors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCache(client, time.Hour)
	ctx := context.Background()

	mock.ExpectGet("hqh:session:sid:health_form_data").SetErr(errors.New("connection reset"))
	_, _, err := c.Get(ctx, "sid", "health_form_data")
	assert.ErrorContains(t, err, "redis get")

	mock.ExpectSet("hqh:session:sid:health_form_data", "{}", time.Hour).SetErr(errors.New("OOM"))
	assert.ErrorContains(t, c.Set(ctx, "sid", "health_form_data", "{}"), "redis set")

	mock.ExpectSetNX("hqh:session:sid:health_submitting", "1", 30*time.Second).SetErr(errors.New("READONLY"))
	_, err = c.SetNX(ctx, "sid", "health_submitting", "1", 30*time.Second)
	assert.ErrorContains(t, err, "redis setnx")

	mock.ExpectDel("hqh:session:sid:a", "hqh:session:sid:b").SetErr(errors.New("down"))
	assert.ErrorContains(t, c.Delete(ctx, "sid", "a", "b"), "redis del")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "sid", "k", "v"))
	ok, err := c.SetNX(ctx, "sid", "lock", "1", 10*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(11 * time.Second)
	ok, _ = c.SetNX(ctx, "sid", "lock", "1", 10*time.Second)
	assert.True(t, ok, "expired lock can be retaken")

	now = now.Add(time.Minute)
	_, found, _ := c.Get(ctx, "sid", "k")
	assert.False(t, found)
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID(NewID()))
	assert.False(t, ValidID("not-a-session"))
	assert.False(t, ValidID(""))
}

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := NewClient("redis://"+mr.Addr(), "test")
	require.NoError(t, err)

	return mr, client
}

func TestNewClient_InvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "Invalid scheme", url: "invalid://url"},
		{name: "Empty URL", url: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, "test")
			assert.Error(t, err)
			assert.Nil(t, client)
		})
	}
}

func TestClient_SetAndGet(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	err := client.Set(ctx, "test:key", "value1", time.Minute)
	require.NoError(t, err)

	value, err := client.Get(ctx, "test:key")
	assert.NoError(t, err)
	assert.Equal(t, "value1", value)

	_, err = client.Get(ctx, "test:missing")
	assert.Error(t, err, "missing key should return redis.Nil")
}

func TestClient_Delete(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "k1", "v", time.Minute))
	require.NoError(t, client.Set(ctx, "k2", "v", time.Minute))

	err := client.Delete(ctx, "k1", "k2")
	assert.NoError(t, err)

	count, err := client.Exists(ctx, "k1", "k2")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestClient_SetNX(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	ok, err := client.SetNX(ctx, "lock", "a", time.Minute)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.SetNX(ctx, "lock", "b", time.Minute)
	assert.NoError(t, err)
	assert.False(t, ok, "second SetNX on the same key should not win")
}

func TestClient_InvalidatePattern(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "staging:team:t1:members", "[]", time.Minute))
	require.NoError(t, client.Set(ctx, "staging:team:t1:calendar", "[]", time.Minute))
	require.NoError(t, client.Set(ctx, "staging:team:t2:members", "[]", time.Minute))

	err := client.InvalidatePattern(ctx, "staging:team:t1:*")
	assert.NoError(t, err)

	count, err := client.Exists(ctx,
		"staging:team:t1:members", "staging:team:t1:calendar", "staging:team:t2:members")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count, "only the other team's key should survive")
}

func TestClient_Health(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	assert.NoError(t, client.Health(ctx))

	mr.Close()
	assert.Error(t, client.Health(ctx))
}

package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"chms-be/internal/domain"
	"chms-be/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCacheService(t *testing.T) (*miniredis.Miniredis, *CacheService) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return mr, NewCacheService(client, zap.NewNop())
}

func TestCacheService_GetCollection_MissOnAbsentKey(t *testing.T) {
	_, cache := setupCacheService(t)

	var members []domain.Member
	hit := cache.GetCollection(context.Background(), "staging:church:c1:members", &members)
	assert.False(t, hit)
}

func TestCacheService_GetCollection_Hit(t *testing.T) {
	mr, cache := setupCacheService(t)

	seeded := []domain.Member{{ID: "u1", FullName: "Anna"}, {ID: "u2", FullName: "Ben"}}
	data, err := json.Marshal(seeded)
	require.NoError(t, err)
	require.NoError(t, mr.Set("staging:church:c1:members", string(data)))

	var members []domain.Member
	hit := cache.GetCollection(context.Background(), "staging:church:c1:members", &members)
	assert.True(t, hit)
	assert.Equal(t, seeded, members)
}

func TestCacheService_GetCollection_CorruptedEntryIsMiss(t *testing.T) {
	mr, cache := setupCacheService(t)
	require.NoError(t, mr.Set("staging:church:c1:members", "{not json"))

	var members []domain.Member
	hit := cache.GetCollection(context.Background(), "staging:church:c1:members", &members)
	assert.False(t, hit, "corrupted cache entries should fall back to the database")
}

func TestCacheService_StoreCollection_AsyncFill(t *testing.T) {
	mr, cache := setupCacheService(t)

	cache.StoreCollection("staging:church:c1:teams", redis.TTLTeams, []domain.Team{{ID: "t1", Name: "Worship"}})

	// The fill is fire-and-forget; poll briefly for it to land.
	assert.Eventually(t, func() bool {
		return mr.Exists("staging:church:c1:teams")
	}, time.Second, 10*time.Millisecond)

	var teams []domain.Team
	hit := cache.GetCollection(context.Background(), "staging:church:c1:teams", &teams)
	assert.True(t, hit)
	require.Len(t, teams, 1)
	assert.Equal(t, "Worship", teams[0].Name)
}

func TestCacheService_Invalidate(t *testing.T) {
	mr, cache := setupCacheService(t)
	require.NoError(t, mr.Set("staging:church:c1:members", "[]"))
	require.NoError(t, mr.Set("staging:church:c1:roles:map", "{}"))

	cache.Invalidate("staging:church:c1:members", "staging:church:c1:roles:map")

	assert.Eventually(t, func() bool {
		return !mr.Exists("staging:church:c1:members") && !mr.Exists("staging:church:c1:roles:map")
	}, time.Second, 10*time.Millisecond)
}

func TestCacheService_InvalidateSync(t *testing.T) {
	mr, cache := setupCacheService(t)
	require.NoError(t, mr.Set("staging:team:t1:calendar", "[]"))

	err := cache.InvalidateSync(context.Background(), "staging:team:t1:calendar")
	assert.NoError(t, err)
	assert.False(t, mr.Exists("staging:team:t1:calendar"))
}

func TestCacheService_NilRedisDegradesGracefully(t *testing.T) {
	cache := NewCacheService(nil, zap.NewNop())

	var members []domain.Member
	assert.False(t, cache.GetCollection(context.Background(), "any", &members))

	// None of these should panic without a client
	cache.StoreCollection("any", time.Minute, members)
	cache.Invalidate("any")
	assert.NoError(t, cache.InvalidateSync(context.Background(), "any"))
	assert.NoError(t, cache.HealthCheck(context.Background()))
	assert.NotNil(t, cache.Keys())
}

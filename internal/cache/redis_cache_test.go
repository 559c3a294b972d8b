package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ecommerce-admin/backend/internal/cache"
	"github.com/ecommerce-admin/backend/internal/config"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestData struct {
	Field1 string `json:"field1"`
	Field2 int    `json:"field2"`
}

func setup(t *testing.T) (cache.Cache, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{
		Enabled:    true,
		DefaultTTL: 10 * time.Minute,
	}
	redisCache := cache.NewRedisCache(client, cfg)

	return redisCache, mock
}

func TestKey(t *testing.T) {
	assert.Equal(t, "dashboard", cache.Key(cache.DashboardKeyPrefix))
	assert.Equal(t, "dashboard:stats:all", cache.Key(cache.DashboardKeyPrefix, "stats", "all"))
}

func TestGet(t *testing.T) {
	ctx := t.Context()
	testKey := "dashboard:test"
	testValue := TestData{Field1: "value1", Field2: 123}
	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		redisCache, mock := setup(t)

		var result TestData

		mock.ExpectGet(testKey).SetVal(string(jsonData))

		found, err := redisCache.Get(ctx, testKey, &result)

		require.NoError(t, err, "Get should not return an error on success")
		assert.True(t, found, "Get should return found=true when key exists")
		assert.Equal(t, testValue, result, "Get should correctly unmarshal the data")
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Success - Key Not Found (Cache Miss)", func(t *testing.T) {
		redisCache, mock := setup(t)

		var result TestData

		mock.ExpectGet(testKey).SetErr(redis.Nil)

		found, err := redisCache.Get(ctx, testKey, &result)

		require.NoError(t, err, "Get should not return an error on cache miss")
		assert.False(t, found, "Get should return found=false on cache miss")
		assert.Empty(t, result, "Result should be zero value on cache miss")
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		redisCache, mock := setup(t)

		var result TestData

		mock.ExpectGet(testKey).SetErr(errors.New("connection refused"))

		found, err := redisCache.Get(ctx, testKey, &result)

		assert.Error(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Failure - Corrupt Payload", func(t *testing.T) {
		redisCache, mock := setup(t)

		var result TestData

		mock.ExpectGet(testKey).SetVal("{not json")

		found, err := redisCache.Get(ctx, testKey, &result)

		assert.Error(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})
}

func TestSet(t *testing.T) {
	ctx := t.Context()
	testKey := "dashboard:test"
	testValue := TestData{Field1: "value1", Field2: 123}
	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - Explicit TTL", func(t *testing.T) {
		redisCache, mock := setup(t)

		mock.ExpectSet(testKey, jsonData, time.Minute).SetVal("OK")

		err := redisCache.Set(ctx, testKey, testValue, time.Minute)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Success - Default TTL when zero", func(t *testing.T) {
		redisCache, mock := setup(t)

		mock.ExpectSet(testKey, jsonData, 10*time.Minute).SetVal("OK")

		err := redisCache.Set(ctx, testKey, testValue, 0)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		redisCache, mock := setup(t)

		mock.ExpectSet(testKey, jsonData, time.Minute).SetErr(errors.New("connection refused"))

		err := redisCache.Set(ctx, testKey, testValue, time.Minute)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})
}

func TestDelete(t *testing.T) {
	ctx := t.Context()
	testKey := "dashboard:test"

	t.Run("Success", func(t *testing.T) {
		redisCache, mock := setup(t)

		mock.ExpectDel(testKey).SetVal(1)

		err := redisCache.Delete(ctx, testKey)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		redisCache, mock := setup(t)

		mock.ExpectDel(testKey).SetErr(errors.New("connection refused"))

		err := redisCache.Delete(ctx, testKey)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})
}

func TestDeleteByPrefix(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		redisCache, mock := setup(t)

		mock.ExpectScan(0, "dashboard:*", 0).SetVal([]string{"dashboard:stats", "dashboard:top"}, 0)
		mock.ExpectDel("dashboard:stats").SetVal(1)
		mock.ExpectDel("dashboard:top").SetVal(1)

		err := redisCache.DeleteByPrefix(ctx, "dashboard")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Success - No Matching Keys", func(t *testing.T) {
		redisCache, mock := setup(t)

		mock.ExpectScan(0, "dashboard:*", 0).SetVal([]string{}, 0)

		err := redisCache.DeleteByPrefix(ctx, "dashboard")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})
}

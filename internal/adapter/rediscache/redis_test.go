package rediscache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"interview-ease/internal/domain"
)

func TestGenerateCacheKey(t *testing.T) {
	assert.Equal(t, "interviewease:session:interview:abc", GenerateCacheKey("session", "interview", "abc"))
	assert.Equal(t, "interviewease:embedding:text:h1:model_ada", GenerateCacheKey("embedding", "text", "h1", "model", "ada"))
}

func TestAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewAdapter(db)
	ctx := context.Background()

	key := "testkey"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectGet(key).SetVal("testvalue")
		val, err := adapter.Get(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, "testvalue", val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CacheMiss", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.Nil)
		val, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectGet(key).SetErr(redisErr)
		_, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdapter_SetDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewAdapter(db)
	ctx := context.Background()

	t.Run("Set", func(t *testing.T) {
		mock.ExpectSet("k", "v", time.Hour).SetVal("OK")
		assert.NoError(t, adapter.Set(ctx, "k", "v", time.Hour))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete", func(t *testing.T) {
		mock.ExpectDel("k").SetVal(1)
		assert.NoError(t, adapter.Delete(ctx, "k"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

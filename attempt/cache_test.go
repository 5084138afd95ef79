package attempt

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/anjiri1684/tutoring_center/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, time.Hour), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()
	user, quiz := uuid.New(), uuid.New()

	got, err := cache.Load(ctx, user, quiz)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Save(ctx, user, quiz, models.Answers{"q1": "a"}))
	assert.True(t, mr.Exists("attempt:"+user.String()+":"+quiz.String()))

	got, err = cache.Load(ctx, user, quiz)
	require.NoError(t, err)
	assert.Equal(t, models.Answers{"q1": "a"}, got)

	require.NoError(t, cache.Delete(ctx, user, quiz))
	got, err = cache.Load(ctx, user, quiz)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCacheExpires(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()
	user, quiz := uuid.New(), uuid.New()

	require.NoError(t, cache.Save(ctx, user, quiz, models.Answers{"q1": "b"}))
	mr.FastForward(2 * time.Hour)

	got, err := cache.Load(ctx, user, quiz)
	require.NoError(t, err)
	assert.Nil(t, got)
}

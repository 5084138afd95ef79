package attempt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionCache keeps answer snapshots of unfinished attempts so they survive
// eviction from memory. Load returns nil and no error on a miss.
type SessionCache interface {
	Save(ctx context.Context, userID, quizID uuid.UUID, answers models.Answers) error
	Load(ctx context.Context, userID, quizID uuid.UUID) (models.Answers, error)
	Delete(ctx context.Context, userID, quizID uuid.UUID) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(userID, quizID uuid.UUID) string {
	return "attempt:" + userID.String() + ":" + quizID.String()
}

func (c *RedisCache) Save(ctx context.Context, userID, quizID uuid.UUID, answers models.Answers) error {
	data, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(userID, quizID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store answers in Redis: %w", err)
	}
	return nil
}

func (c *RedisCache) Load(ctx context.Context, userID, quizID uuid.UUID) (models.Answers, error) {
	data, err := c.client.Get(ctx, cacheKey(userID, quizID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read answers from Redis: %w", err)
	}
	var answers models.Answers
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	return answers, nil
}

func (c *RedisCache) Delete(ctx context.Context, userID, quizID uuid.UUID) error {
	return c.client.Del(ctx, cacheKey(userID, quizID)).Err()
}

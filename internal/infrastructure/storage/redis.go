package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKey = "weathersafe:session:token"
	userKey  = "weathersafe:session:user"
)

// RedisStorage keeps the session slots in a box-local redis. Used by kiosk
// deployments where several console processes on one machine share a login.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisClient connects and verifies the instance is reachable.
func NewRedisClient(addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("storage: redis ping: %w", err)
	}
	return client, nil
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (r *RedisStorage) Load(ctx context.Context) (string, string, error) {
	vals, err := r.client.MGet(ctx, tokenKey, userKey).Result()
	if err != nil {
		return "", "", fmt.Errorf("storage: redis load: %w", err)
	}
	return asString(vals[0]), asString(vals[1]), nil
}

func (r *RedisStorage) Save(ctx context.Context, token, userJSON string) error {
	if err := r.client.MSet(ctx, tokenKey, token, userKey, userJSON).Err(); err != nil {
		return fmt.Errorf("storage: redis save: %w", err)
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context) error {
	err := r.client.Del(ctx, tokenKey, userKey).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("storage: redis delete: %w", err)
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

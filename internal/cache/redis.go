package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/airplanes/config"
	"github.com/Domenick1991/airplanes/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client  *redis.Client
	listTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, listTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), listTTL)
}

func NewRedisCacheWithClient(client *redis.Client, listTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, listTTL: listTTL}
}

// GetAirplanes returns nil, nil on a cache miss.
func (c *RedisCache) GetAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	data, err := c.client.Get(ctx, airplanesKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var airplanes []domain.Airplane
	if err := json.Unmarshal(data, &airplanes); err != nil {
		return nil, err
	}
	return airplanes, nil
}

// ListGeneration returns the counter bumped by every InvalidateAirplanes call.
// Read it before loading the list from storage and pass it to SetAirplanes.
func (c *RedisCache) ListGeneration(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, airplanesGenerationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetAirplanes stores the list only while the generation still equals gen.
// A list loaded before a concurrent invalidation is dropped instead of cached.
func (c *RedisCache) SetAirplanes(ctx context.Context, gen int64, airplanes []domain.Airplane) error {
	payload, err := json.Marshal(airplanes)
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, airplanesGenerationKey()).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, airplanesKey(), payload, c.listTTL)
			return nil
		})
		return err
	}, airplanesGenerationKey())
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisCache) InvalidateAirplanes(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, airplanesGenerationKey())
		pipe.Del(ctx, airplanesKey())
		return nil
	})
	return err
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func airplanesKey() string {
	return "cache:airplanes"
}

func airplanesGenerationKey() string {
	return "cache:airplanes:gen"
}

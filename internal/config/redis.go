package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis when REDIS_ADDR is set.
// It returns nil when Redis is disabled or unreachable; callers fall back to in-process storage.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unreachable at %s, using in-memory rate limiting: %v", cfg.Addr, err)
		_ = client.Close()
		return nil
	}

	log.Printf("✅ Redis connected [%s/%d]", cfg.Addr, cfg.DB)
	return client
}

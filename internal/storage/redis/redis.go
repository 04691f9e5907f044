package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/balkashynov/studylog/internal/config"
	"github.com/balkashynov/studylog/internal/store"
)

// keyPrefix namespaces slot keys inside a shared redis database
const keyPrefix = "studylog:"

// Slot implements store.Slot on top of plain redis strings
type Slot struct {
	client  *redis.Client
	timeout time.Duration
}

// Open creates a redis-backed slot and verifies the connection
func Open(cfg config.RedisConfig) (*Slot, error) {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid redis timeout: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Slot{client: client, timeout: timeout}, nil
}

// Close closes the redis connection
func (s *Slot) Close() error {
	return s.client.Close()
}

// Get returns the value stored under key, or store.ErrSlotEmpty
func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

// Put overwrites the value stored under key. Slots never expire.
func (s *Slot) Put(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

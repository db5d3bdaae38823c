package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kalakriti-next/internal/config"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 3 * time.Second

// RedisBlobStore 状态镜像的 Redis 后端
type RedisBlobStore struct {
	client *redis.Client
	prefix string
}

// NewRedisBlobStore 创建 Redis 键值后端
func NewRedisBlobStore(cfg config.StateRedisConfig) (*RedisBlobStore, error) {
	addr := strings.TrimSpace(cfg.Host)
	if addr == "" {
		addr = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "kk"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", addr, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisBlobStore{client: client, prefix: prefix}, nil
}

// Get 读取镜像键
func (s *RedisBlobStore) Get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	val, err := s.client.Get(ctx, s.buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Put 写入镜像键（无过期，镜像即历史）
func (s *RedisBlobStore) Put(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return s.client.Set(ctx, s.buildKey(key), value, 0).Err()
}

// Delete 删除镜像键
func (s *RedisBlobStore) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return s.client.Del(ctx, s.buildKey(key)).Err()
}

func (s *RedisBlobStore) buildKey(key string) string {
	return s.prefix + ":state:" + key
}

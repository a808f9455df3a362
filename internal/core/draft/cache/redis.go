package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"recipe-costing/internal/infrastructure/config"
	"recipe-costing/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// RedisCache 以 Redis 實現的草稿回應快取
type RedisCache struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewRedisCache 創建 Redis 快取並測試連接
func NewRedisCache(cfg *config.Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		config: &cfg.Cache,
	}, nil
}

// Get 獲取快取值
func (s *RedisCache) Get(ctx context.Context, prompt string) (string, error) {
	key := s.generateKey(prompt)

	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("draft", key)
			return "", common.ErrCacheDisabled
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	common.LogCacheHit("draft", key)
	return value, nil
}

// Set 設置快取值
func (s *RedisCache) Set(ctx context.Context, prompt, value string) error {
	key := s.generateKey(prompt)

	if err := s.client.Set(ctx, key, value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連接
func (s *RedisCache) Close() error {
	return s.client.Close()
}

// generateKey 以提示詞哈希生成快取鍵
func (s *RedisCache) generateKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "draft:" + hex.EncodeToString(hash[:])
}

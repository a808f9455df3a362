package cache

import (
	"context"

	"recipe-costing/internal/infrastructure/config"
)

// Cache 草稿回應快取介面，鍵為提示詞
type Cache interface {
	Get(ctx context.Context, prompt string) (string, error)
	Set(ctx context.Context, prompt, value string) error
	Close() error
}

// New 依設定選擇快取後端，快取停用時回傳 nil
func New(cfg *config.Config) (Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	if cfg.Cache.Backend == "redis" {
		return NewRedisCache(cfg)
	}
	return NewManager(cfg), nil
}

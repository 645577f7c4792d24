package service

import (
	"context"
	"fmt"
	"time"

	"community-portal/pkg/redis"
)

// Cache 新闻列表缓存所需的最小接口，由 pkg/redis.Client 实现
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// TokenBlacklist Token 吊销所需的最小接口
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

const feedCachePrefix = "feed:"

func feedCacheKey(category string, page int) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("%s%s:%d", feedCachePrefix, category, page)
}

// cacheOf 避免 nil *redis.Client 被装进非 nil 接口
func cacheOf(rdb *redis.Client) Cache {
	if rdb == nil {
		return nil
	}
	return rdb
}

func blacklistOf(rdb *redis.Client) TokenBlacklist {
	if rdb == nil {
		return nil
	}
	return rdb
}

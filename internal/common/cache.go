package common

import (
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is a thin wrapper around go-cache shared by the services. Engagement
// writes (comments, likes) must invalidate the owning blog's detail key so
// readers never see a stale fan-out for longer than a single request.
type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

// DeletePrefix removes every entry whose key starts with the given prefix.
// go-cache has no native prefix scan so this walks the item snapshot.
func (c *Cache) DeletePrefix(prefix string) {
	for key := range c.Cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.Cache.Delete(key)
		}
	}
}

func CacheKeyBlogDetail(id int) string {
	return "blog_detail:" + strconv.Itoa(id)
}

func CacheKeyPublishedBlogs(page int) string {
	return "published_blogs:" + strconv.Itoa(page)
}

func CacheKeyUserByAccessToken(token []byte) string {
	return "user_by_access_token:" + string(token)
}

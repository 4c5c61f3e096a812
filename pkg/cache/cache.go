// Package cache 提供基于 KV 存储的泛型缓存，并按标签组织键以便整组失效.
//
// 键格式为 ks.cache.<tag>.<hash>，同一标签下的所有条目可以通过 Invalidate 一次清除：
//
//	c := cache.New(kvStore)
//	key := cache.TagKey(cache.TagWishes, "GET /api/v1/wishes")
//	_ = cache.Set(ctx, c, key, resp, 30*time.Second)
//	...
//	c.Invalidate(ctx, cache.TagWishes) // 新祝福写入后
//
// 缓存未命中返回 kv.ErrNotFound. 任何缓存失败都不应影响主流程.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"

	"github.com/yeisme/keepsake/pkg/internal/storage/kv"
	nlog "github.com/yeisme/keepsake/pkg/log"
)

// KeyPrefix 所有缓存键的前缀.
const KeyPrefix = "ks.cache."

// 缓存标签，对应会被公开读取的表.
const (
	TagMilestones = "milestones"
	TagFirsts     = "firsts"
	TagLetters    = "letters"
	TagWishes     = "wishes"
	TagVoice      = "voice"
)

// Cache 基于KV存储的缓存实现.
type Cache struct {
	kvStore kv.KVStore
}

// New 创建缓存实例.
func New(kvStore kv.KVStore) *Cache {
	return &Cache{kvStore: kvStore}
}

// TagKey 生成标签下的缓存键. raw 可以是任意长度的字符串，会被哈希.
func TagKey(tag, raw string) string {
	return fmt.Sprintf("%s%s.%016x", KeyPrefix, tag, xxhash.Sum64String(raw))
}

// Get 泛型获取缓存值.
func Get[T any](ctx context.Context, c *Cache, key string) (T, error) {
	var zero T

	data, err := c.kvStore.Get(ctx, key)
	if err != nil {
		return zero, err
	}

	var value T
	if err := sonic.Unmarshal(data, &value); err != nil {
		return zero, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return value, nil
}

// Set 泛型设置缓存值.
func Set[T any](ctx context.Context, c *Cache, key string, value T, ttl time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return c.kvStore.Set(ctx, key, data, ttl)
}

// GetOrSet 未命中时调用 getter 并写回缓存. 写缓存失败不影响返回值.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, getter func() (T, error), ttl time.Duration) (T, error) {
	if value, err := Get[T](ctx, c, key); err == nil {
		return value, nil
	}

	value, err := getter()
	if err != nil {
		var zero T
		return zero, err
	}

	_ = Set(ctx, c, key, value, ttl)

	return value, nil
}

// Delete 删除缓存键.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.kvStore.Delete(ctx, key)
}

// Invalidate 删除给定标签下的全部条目. 失败只记录日志.
func (c *Cache) Invalidate(ctx context.Context, tags ...string) {
	if c == nil || c.kvStore == nil {
		return
	}

	for _, tag := range tags {
		prefix := KeyPrefix + tag + "."

		keys, err := c.kvStore.Keys(ctx, prefix+"*")
		if err != nil {
			nlog.Ctx(ctx).Warn().Err(err).Str("tag", tag).Msg("cache invalidate: list keys failed")
			continue
		}

		for _, k := range keys {
			if err := c.kvStore.Delete(ctx, k); err != nil {
				nlog.Ctx(ctx).Warn().Err(err).Str("key", k).Msg("cache invalidate: delete failed")
			}
		}
	}
}

// Clear 清空全部缓存条目.
func (c *Cache) Clear(ctx context.Context) error {
	keys, err := c.kvStore.Keys(ctx, KeyPrefix+"*")
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := c.kvStore.Delete(ctx, key); err != nil {
			return err
		}
	}

	return nil
}

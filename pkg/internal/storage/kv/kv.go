// Package kv 提供响应缓存与轻量状态使用的键值存储接口及多后端实现.
package kv

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yeisme/keepsake/pkg/configs"
)

// ErrNotFound 键不存在或已过期.
var ErrNotFound = errors.New("kv: key not found")

// Client 包装具体 KVStore 实现.
type Client struct {
	KVStore
	kind KVType
}

// KVStore 定义键值存储接口.
type KVStore interface {
	// Get 获取键的值，不存在时返回 ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set 设置键的值，ttl<=0 表示不过期.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete 删除键.
	Delete(ctx context.Context, key string) error
	// Exists 检查键是否存在.
	Exists(ctx context.Context, key string) (bool, error)
	// Keys 返回匹配的键. 支持 "" / "*"（全部）、"prefix*"（前缀）与精确匹配.
	Keys(ctx context.Context, pattern string) ([]string, error)
	// Close 关闭存储连接.
	Close() error
}

// KVType 键值存储类型.
type KVType string

const (
	KVTypeMemory     KVType = "memory"
	KVTypeRedis      KVType = "redis"
	KVTypeNATS       KVType = "nats"
	KVTypeGroupcache KVType = "groupcache"
)

// KVFactory 定义创建 KVStore 的工厂函数类型.
type KVFactory func(ctx context.Context, cfg *configs.KVConfig) (KVStore, error)

var kvFactories = make(map[KVType]KVFactory)

// RegisterKVFactory 注册 KV 工厂函数.
func RegisterKVFactory(kvType KVType, factory KVFactory) {
	kvFactories[kvType] = factory
}

// GetRegisteredKVTypes 返回已注册的 KV 类型列表（已排序）.
func GetRegisteredKVTypes() []KVType {
	types := make([]KVType, 0, len(kvFactories))
	for kvType := range kvFactories {
		types = append(types, kvType)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// NewKVStore 根据类型创建 KVStore 实例.
func NewKVStore(ctx context.Context, kvType KVType, cfg *configs.KVConfig) (KVStore, error) {
	factory, exists := kvFactories[kvType]
	if !exists {
		return nil, fmt.Errorf("unsupported KV type: %s", kvType)
	}

	if cfg == nil {
		defaults := configs.Defaults().KV
		cfg = &defaults
	}

	return factory(ctx, cfg)
}

// New 按配置创建 KV 客户端.
func New(ctx context.Context, cfg configs.KVConfig) (*Client, error) {
	kind := KVType(cfg.Type)
	if kind == "" {
		kind = KVTypeMemory
	}

	store, err := NewKVStore(ctx, kind, &cfg)
	if err != nil {
		return nil, err
	}

	return &Client{KVStore: store, kind: kind}, nil
}

// NewMemoryClient 创建内存 KV 客户端（测试与单机部署）.
func NewMemoryClient() *Client {
	return &Client{KVStore: newMemoryKV(), kind: KVTypeMemory}
}

// Type 返回后端类型.
func (c *Client) Type() KVType {
	return c.kind
}

// DeletePrefix 删除所有以 prefix 开头的键，返回删除数量.
func (c *Client) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	keys, err := c.Keys(ctx, prefix+"*")
	if err != nil {
		return 0, err
	}

	n := 0

	for _, k := range keys {
		if err := c.Delete(ctx, k); err != nil {
			return n, err
		}
		n++
	}

	return n, nil
}

// Ping 通过一次读探测后端连通性.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Exists(ctx, "ks.ping")
	return err
}

// matchKey 实现 Keys 的简化匹配规则.
func matchKey(pattern, key string) bool {
	switch {
	case pattern == "" || pattern == "*":
		return true
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(key, strings.TrimSuffix(pattern, "*"))
	default:
		return key == pattern
	}
}

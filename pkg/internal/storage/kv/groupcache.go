package kv

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/groupcache"

	"github.com/yeisme/keepsake/pkg/configs"
)

// GroupcacheKV 本地写入、对等节点回源读取的 KV 实现.
// groupcache 组内缓存不可失效，因此本地数据优先，只有本地未命中时才经 groupcache 向 peer 读取.
type GroupcacheKV struct {
	group *groupcache.Group
	peers *groupcache.HTTPPool
	data  map[string][]byte
	mu    sync.RWMutex
}

var (
	groupsMu sync.Mutex
	groups   = map[string]*GroupcacheKV{}
)

// NewGroupcacheKV 创建 Groupcache KV 实例. 同名组在进程内只创建一次.
func NewGroupcacheKV(_ context.Context, cfg *configs.KVConfig) (KVStore, error) {
	gc := cfg.Groupcache

	groupsMu.Lock()
	defer groupsMu.Unlock()

	if existing, ok := groups[gc.Name]; ok {
		return existing, nil
	}

	kv := &GroupcacheKV{data: make(map[string][]byte)}

	kv.group = groupcache.NewGroup(gc.Name, gc.CacheBytes, groupcache.GetterFunc(
		func(_ context.Context, key string, dest groupcache.Sink) error {
			value, ok := kv.local(key)
			if !ok {
				return fmt.Errorf("%w: %s", ErrNotFound, key)
			}

			return dest.SetBytes(value)
		}))

	if len(gc.Peers) > 0 {
		kv.peers = groupcache.NewHTTPPoolOpts(gc.Self, &groupcache.HTTPPoolOptions{})
		kv.peers.Set(gc.Peers...)
	}

	groups[gc.Name] = kv

	return kv, nil
}

// local 读取本地数据并处理过期.
func (g *GroupcacheKV) local(key string) ([]byte, bool) {
	g.mu.RLock()
	raw, ok := g.data[key]
	g.mu.RUnlock()

	if !ok {
		return nil, false
	}

	val, expired, err := decodeWithTTL(raw, time.Now())
	if err != nil || expired {
		g.mu.Lock()
		delete(g.data, key)
		g.mu.Unlock()

		return nil, false
	}

	return val, true
}

// Get 获取键的值.
func (g *GroupcacheKV) Get(ctx context.Context, key string) ([]byte, error) {
	if val, ok := g.local(key); ok {
		out := make([]byte, len(val))
		copy(out, val)

		return out, nil
	}

	if g.peers == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	var data []byte
	if err := g.group.Get(ctx, key, groupcache.AllocatingByteSliceSink(&data)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	return data, nil
}

// Set 设置键的值.
func (g *GroupcacheKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	encoded, err := encodeWithTTL(value, ttl)
	if err != nil {
		return err
	}

	buf := make([]byte, len(encoded))
	copy(buf, encoded)

	g.mu.Lock()
	g.data[key] = buf
	g.mu.Unlock()

	return nil
}

// Delete 删除键.
func (g *GroupcacheKV) Delete(_ context.Context, key string) error {
	g.mu.Lock()
	delete(g.data, key)
	g.mu.Unlock()

	return nil
}

// Exists 检查键是否存在.
func (g *GroupcacheKV) Exists(_ context.Context, key string) (bool, error) {
	_, ok := g.local(key)
	return ok, nil
}

// Keys 获取匹配的本地键.
func (g *GroupcacheKV) Keys(_ context.Context, pattern string) ([]string, error) {
	g.mu.RLock()
	candidates := make([]string, 0, len(g.data))

	for key := range g.data {
		if matchKey(pattern, key) {
			candidates = append(candidates, key)
		}
	}
	g.mu.RUnlock()

	keys := candidates[:0]

	for _, key := range candidates {
		if _, ok := g.local(key); ok {
			keys = append(keys, key)
		}
	}

	return keys, nil
}

// Close groupcache 没有显式的关闭方法.
func (g *GroupcacheKV) Close() error {
	return nil
}

// Stats 返回组统计信息.
func (g *GroupcacheKV) Stats() groupcache.Stats {
	return g.group.Stats
}

func init() {
	RegisterKVFactory(KVTypeGroupcache, NewGroupcacheKV)
}

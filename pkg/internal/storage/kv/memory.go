package kv

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yeisme/keepsake/pkg/configs"
)

type memoryEntry struct {
	value    []byte
	expireAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && !now.Before(e.expireAt)
}

// MemoryKV 基于 sync.Map 的内存 KV 实现，过期键在读取时惰性清理.
type MemoryKV struct {
	data sync.Map
}

func newMemoryKV() *MemoryKV {
	return &MemoryKV{}
}

// NewMemoryKV 创建内存 KV 实例.
func NewMemoryKV(_ context.Context, _ *configs.KVConfig) (KVStore, error) {
	return newMemoryKV(), nil
}

func (m *MemoryKV) load(key string) (memoryEntry, bool) {
	v, ok := m.data.Load(key)
	if !ok {
		return memoryEntry{}, false
	}

	e, ok := v.(memoryEntry)
	if !ok {
		return memoryEntry{}, false
	}

	if e.expired(time.Now()) {
		m.data.CompareAndDelete(key, v)
		return memoryEntry{}, false
	}

	return e, true
}

// Get 获取键的值.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := m.load(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)

	return out, nil
}

// Set 设置键的值.
func (m *MemoryKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := memoryEntry{value: make([]byte, len(value))}
	copy(e.value, value)

	if ttl > 0 {
		e.expireAt = time.Now().Add(ttl)
	}

	m.data.Store(key, e)

	return nil
}

// Delete 删除键.
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.data.Delete(key)
	return nil
}

// Exists 检查键是否存在.
func (m *MemoryKV) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.load(key)
	return ok, nil
}

// Keys 获取匹配的键.
func (m *MemoryKV) Keys(_ context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0)
	now := time.Now()

	m.data.Range(func(key, value any) bool {
		k, ok := key.(string)
		if !ok {
			return true
		}

		if e, ok := value.(memoryEntry); ok && e.expired(now) {
			m.data.CompareAndDelete(key, value)
			return true
		}

		if matchKey(pattern, k) {
			keys = append(keys, k)
		}

		return true
	})

	return keys, nil
}

// Close 内存实现无需释放资源.
func (m *MemoryKV) Close() error {
	return nil
}

func init() {
	RegisterKVFactory(KVTypeMemory, NewMemoryKV)
}

// Package context 把存储管理器放入请求上下文，handler 与服务层按需取用各存储客户端.
package context

import (
	"context"

	"github.com/yeisme/keepsake/pkg/internal/storage"
	dbc "github.com/yeisme/keepsake/pkg/internal/storage/db"
	kvc "github.com/yeisme/keepsake/pkg/internal/storage/kv"
	mqc "github.com/yeisme/keepsake/pkg/internal/storage/mq"
	s3c "github.com/yeisme/keepsake/pkg/internal/storage/s3"
)

type managerKey struct{}

// WithStorageManager 将 Manager 存储到 context 中.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, managerKey{}, mgr)
}

// GetManager 从 context 中获取 Manager，不存在时返回 nil.
func GetManager(ctx context.Context) *storage.Manager {
	mgr, _ := ctx.Value(managerKey{}).(*storage.Manager)
	return mgr
}

// pick 从 Manager 中取出某个客户端，Manager 不存在时返回零值.
func pick[T any](ctx context.Context, get func(*storage.Manager) T) T {
	var zero T

	mgr := GetManager(ctx)
	if mgr == nil {
		return zero
	}

	return get(mgr)
}

// GetDBClient 从 context 中获取 DB 客户端.
func GetDBClient(ctx context.Context) *dbc.Client { return pick(ctx, (*storage.Manager).GetDBClient) }

// GetS3Client 从 context 中获取 S3 客户端.
func GetS3Client(ctx context.Context) *s3c.Client { return pick(ctx, (*storage.Manager).GetS3Client) }

// GetKVClient 从 context 中获取 KV 客户端.
func GetKVClient(ctx context.Context) *kvc.Client { return pick(ctx, (*storage.Manager).GetKVClient) }

// GetMQClient 从 context 中获取 MQ 客户端.
func GetMQClient(ctx context.Context) *mqc.Client { return pick(ctx, (*storage.Manager).GetMQClient) }

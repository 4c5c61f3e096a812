package service

import (
	"context"
	"io"

	"gorm.io/gorm"

	"github.com/yeisme/keepsake/pkg/cache"
	"github.com/yeisme/keepsake/pkg/configs"
	ctxPkg "github.com/yeisme/keepsake/pkg/context"
	"github.com/yeisme/keepsake/pkg/internal/types"
	"github.com/yeisme/keepsake/pkg/queue"
)

// BlobStore 对象存储能力，由 s3.Client 实现.
type BlobStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]types.BlobObject, error)
	PublicURL(key string) string
}

// Invalidator 按标签使响应缓存失效.
type Invalidator interface {
	Invalidate(ctx context.Context, tags ...string)
}

// Deps 服务层依赖.
type Deps struct {
	DB     *gorm.DB
	Blobs  BlobStore
	Events queue.Publisher
	Cache  Invalidator
	Config configs.AppConfig
}

type depsKey struct{}

// WithDeps 在 ctx 中放入显式依赖，优先于存储管理器. 用于测试与命令行.
func WithDeps(ctx context.Context, d Deps) context.Context {
	return context.WithValue(ctx, depsKey{}, d)
}

// DepsFromContext 组装服务依赖：优先使用 WithDeps 注入的值，否则从存储管理器构建.
func DepsFromContext(ctx context.Context) Deps {
	if d, ok := ctx.Value(depsKey{}).(Deps); ok {
		return d.normalize()
	}

	cfg := configs.GetConfig()
	d := Deps{Config: *cfg}

	if mgr := ctxPkg.GetManager(ctx); mgr != nil {
		if mgr.DB != nil {
			d.DB = mgr.DB.GetDB()
		}

		if mgr.S3 != nil {
			d.Blobs = mgr.S3
		}

		if mgr.MQ != nil {
			d.Events = queue.NewBus(mgr.MQ.Publisher(), cfg.Events)
		}

		if mgr.KV != nil && cfg.Cache.Enabled {
			d.Cache = cache.New(mgr.KV)
		}
	}

	return d.normalize()
}

func (d Deps) normalize() Deps {
	if d.Events == nil {
		d.Events = queue.Discard{}
	}

	if d.Cache == nil {
		d.Cache = noopInvalidator{}
	}

	return d
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, ...string) {}

// Package storage 聚合 keepsake 使用的全部存储资源：关系库、对象存储、KV 缓存与消息队列.
//
// Example:
//
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//		return err
//	}
//	defer mgr.Close()
//
//	db := mgr.GetDBClient()
//	blobs := mgr.GetS3Client()
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yeisme/keepsake/pkg/configs"
	dbc "github.com/yeisme/keepsake/pkg/internal/storage/db"
	kvc "github.com/yeisme/keepsake/pkg/internal/storage/kv"
	mqc "github.com/yeisme/keepsake/pkg/internal/storage/mq"
	s3c "github.com/yeisme/keepsake/pkg/internal/storage/s3"
	nlog "github.com/yeisme/keepsake/pkg/log"
	"github.com/yeisme/keepsake/pkg/metrics"
)

// Manager 聚合所有存储资源.
type Manager struct {
	DB *dbc.Client
	S3 *s3c.Client
	KV *kvc.Client
	MQ *mqc.Client
}

var (
	mgr     *Manager
	mgrErr  error
	mgrOnce sync.Once
)

// Init 使用全局配置初始化默认 Manager. 重复调用只返回首次结果.
func Init(ctx context.Context) (*Manager, error) {
	mgrOnce.Do(func() {
		mgr, mgrErr = New(ctx, configs.GetConfig())
	})

	return mgr, mgrErr
}

// New 按给定配置创建 Manager. 任一资源失败时关闭已建立的连接并返回错误.
func New(ctx context.Context, cfg *configs.AppConfig) (*Manager, error) {
	m := &Manager{}

	var err error

	if m.DB, err = dbc.New(ctx, cfg.DB); err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}

	if m.S3, err = s3c.New(ctx, cfg.S3); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("init s3: %w", err)
	}

	if m.KV, err = kvc.New(ctx, cfg.KV); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("init kv: %w", err)
	}

	var mqOpts mqc.Options
	if cfg.Metrics.Enabled {
		mqOpts.Registerer = metrics.GetRegistry()
	}

	if m.MQ, err = mqc.New(ctx, cfg.MQ, mqOpts); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("init mq: %w", err)
	}

	nlog.Logger().Info().
		Str("db", cfg.DB.GetDBType()).
		Str("kv", string(m.KV.Type())).
		Str("mq", string(m.MQ.Type())).
		Msg("storage manager initialized")

	return m, nil
}

// GetS3Client 获取 S3 客户端.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetMQClient 获取 MQ 客户端.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// Close 依次关闭已建立的资源.
func (m *Manager) Close() error {
	var errs []error

	if m.MQ != nil {
		errs = append(errs, m.MQ.Close())
	}

	if m.KV != nil {
		errs = append(errs, m.KV.Close())
	}

	if m.S3 != nil {
		errs = append(errs, m.S3.Close())
	}

	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}

	return errors.Join(errs...)
}

// Package s3 基于 MinIO 客户端实现对象存储：上传投稿与语音、生成公开地址、清理孤儿对象.
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yeisme/keepsake/pkg/configs"
	"github.com/yeisme/keepsake/pkg/internal/types"
	nlog "github.com/yeisme/keepsake/pkg/log"
)

// publicReadPolicy 匿名只读策略模板.
const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

// Client 包装 MinIO 客户端，固定使用配置中的单个 bucket.
type Client struct {
	*minio.Client
	cfg configs.S3Config
}

// New 初始化 MinIO 客户端，bucket 不存在时创建，并按配置设置匿名只读策略.
func New(ctx context.Context, cfg configs.S3Config) (*Client, error) {
	endpoint := cfg.Endpoint
	// 允许带 scheme 的 endpoint
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo(configs.AppName, configs.AppVersion)

	c := &Client{Client: cli, cfg: cfg}

	if err := c.ensureBucket(ctx); err != nil {
		return nil, err
	}

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.BucketName).Msg("s3 connected")

	return c, nil
}

func (c *Client) ensureBucket(ctx context.Context) error {
	bkt := c.cfg.BucketName

	exists, err := c.BucketExists(ctx, bkt)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bkt, err)
	}

	if !exists {
		if err := c.MakeBucket(ctx, bkt, minio.MakeBucketOptions{Region: c.cfg.Region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", bkt, err)
		}

		nlog.Logger().Info().Str("bucket", bkt).Msg("bucket created")
	}

	if c.cfg.PublicRead {
		if err := c.SetBucketPolicy(ctx, bkt, fmt.Sprintf(publicReadPolicy, bkt)); err != nil {
			return fmt.Errorf("set public-read policy on %s: %w", bkt, err)
		}
	}

	return nil
}

// Upload 写入对象并返回公开地址. size 未知时传 -1.
func (c *Client) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := c.PutObject(ctx, c.cfg.BucketName, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return c.PublicURL(key), nil
}

// Remove 删除对象，对象不存在视为成功.
func (c *Client) Remove(ctx context.Context, key string) error {
	if err := c.RemoveObject(ctx, c.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}

	return nil
}

// List 递归列出 prefix 下的对象.
func (c *Client) List(ctx context.Context, prefix string) ([]types.BlobObject, error) {
	var out []types.BlobObject

	opts := minio.ListObjectsOptions{Prefix: strings.TrimLeft(prefix, "/"), Recursive: true}
	for obj := range c.ListObjects(ctx, c.cfg.BucketName, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects under %s: %w", prefix, obj.Err)
		}

		out = append(out, types.BlobObject{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}

	return out, nil
}

// PublicURL 返回对象的公开访问地址.
func (c *Client) PublicURL(key string) string {
	return c.cfg.ObjectURL(key)
}

// HealthCheck 通过检查 bucket 验证连接.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.BucketExists(ctx, c.cfg.BucketName)
	return err
}

// Close MinIO 客户端无需关闭.
func (c *Client) Close() error {
	return nil
}

// Bucket 返回使用的 bucket 名称.
func (c *Client) Bucket() string {
	return c.cfg.BucketName
}

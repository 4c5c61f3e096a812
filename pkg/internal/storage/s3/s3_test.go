package s3_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/yeisme/keepsake/pkg/configs"
	"github.com/yeisme/keepsake/pkg/internal/storage/s3"
)

// 设置 ENABLE_S3_TEST=1 并提供 MinIO（默认 localhost:9000）时运行.
func TestUploadListRemove(t *testing.T) {
	if os.Getenv("ENABLE_S3_TEST") == "" {
		t.Skip("set ENABLE_S3_TEST=1 to enable")
	}

	cfg := configs.Defaults().S3
	cfg.BucketName = "keepsake-test"

	ctx := context.Background()

	c, err := s3.New(ctx, cfg)
	if err != nil {
		t.Skipf("minio not available: %v", err)
	}

	key := "family/test-object.txt"

	u, err := c.Upload(ctx, key, strings.NewReader("hello"), 5, "text/plain")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if !strings.HasSuffix(u, "/keepsake-test/"+key) {
		t.Errorf("url = %s", u)
	}

	objs, err := c.List(ctx, "family/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	found := false

	for _, o := range objs {
		if o.Key == key {
			found = true
		}
	}

	if !found {
		t.Errorf("uploaded object not listed: %v", objs)
	}

	if err := c.Remove(ctx, key); err != nil {
		t.Fatalf("remove: %v", err)
	}
}

package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/keepsake/pkg/configs"
	"github.com/yeisme/keepsake/pkg/internal/model"
	"github.com/yeisme/keepsake/pkg/internal/types"
)

const testBucket = "birthday-uploads"

var nonWord = regexp.MustCompile(`[^A-Za-z0-9]+`)

// newTestDB 为每个测试创建独立的内存 SQLite 并迁移全部表.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + nonWord.ReplaceAllString(t.Name(), "_") + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}

	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

// fakeBlobs 内存对象存储.
type fakeBlobs struct {
	mu      sync.Mutex
	objects map[string]types.BlobObject
	data    map[string][]byte
	failOn  string
	removed []string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string]types.BlobObject{}, data: map[string][]byte{}}
}

func (f *fakeBlobs) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	if f.failOn != "" && bytes.Contains(b, []byte(f.failOn)) {
		return "", errors.New("blob store unavailable")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.objects[key] = types.BlobObject{Key: key, Size: int64(len(b)), LastModified: time.Now()}
	f.data[key] = b

	return f.PublicURL(key), nil
}

func (f *fakeBlobs) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.objects, key)
	delete(f.data, key)
	f.removed = append(f.removed, key)

	return nil
}

func (f *fakeBlobs) List(_ context.Context, prefix string) ([]types.BlobObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []types.BlobObject

	for k, o := range f.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, o)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return out, nil
}

func (f *fakeBlobs) PublicURL(key string) string {
	return "http://blob.test/" + testBucket + "/" + key
}

func (f *fakeBlobs) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.objects))
	for k := range f.objects {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}

// recorder 记录发布的事件与缓存失效.
type recorder struct {
	mu          sync.Mutex
	topics      []string
	payloads    []any
	invalidated []string
}

func (r *recorder) Publish(_ context.Context, topic string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.topics = append(r.topics, topic)
	r.payloads = append(r.payloads, payload)
}

func (r *recorder) Invalidate(_ context.Context, tags ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.invalidated = append(r.invalidated, tags...)
}

func (r *recorder) published(topic string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0

	for _, t := range r.topics {
		if t == topic {
			n++
		}
	}

	return n
}

type testEnv struct {
	deps  Deps
	db    *gorm.DB
	blobs *fakeBlobs
	rec   *recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := configs.Defaults()
	cfg.Admin.Password = "Birthday2024"
	cfg.S3.BucketName = testBucket

	db := newTestDB(t)
	blobs := newFakeBlobs()
	rec := &recorder{}

	return &testEnv{
		deps:  Deps{DB: db, Blobs: blobs, Events: rec, Cache: rec, Config: cfg},
		db:    db,
		blobs: blobs,
		rec:   rec,
	}
}

// seedUpload 直接写入一条投稿.
func (e *testEnv) seedUpload(t *testing.T, name string, ft model.FileType, approved bool, at time.Time) model.FamilyUpload {
	t.Helper()

	u := model.FamilyUpload{
		UploaderName: name,
		FileURL:      "http://blob.test/" + testBucket + "/family/" + name,
		FileType:     ft,
		Approved:     approved,
		CreatedAt:    at,
	}
	if err := e.db.Create(&u).Error; err != nil {
		t.Fatalf("seed upload: %v", err)
	}

	// approved=false 时 gorm 会跳过零值字段而使用列默认值，这里显式写回
	if err := e.db.Model(&u).Update("approved", approved).Error; err != nil {
		t.Fatalf("seed upload approved: %v", err)
	}

	return u
}

func filePart(name, contentType, body string) FilePart {
	return FilePart{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Open:        func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(body)), nil },
	}
}

func ptr[T any](v T) *T { return &v }

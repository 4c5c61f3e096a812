package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/keepsake/pkg/cache"
	"github.com/yeisme/keepsake/pkg/configs"
	"github.com/yeisme/keepsake/pkg/internal/model"
	"github.com/yeisme/keepsake/pkg/internal/service"
	"github.com/yeisme/keepsake/pkg/internal/storage/kv"
	"github.com/yeisme/keepsake/pkg/internal/types"
)

var nonWord = regexp.MustCompile(`[^A-Za-z0-9]+`)

type nopBlobs struct{}

func (nopBlobs) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	_, err := io.Copy(io.Discard, r)
	return "http://blob.test/b/" + key, err
}

func (nopBlobs) Remove(context.Context, string) error { return nil }

func (nopBlobs) List(context.Context, string) ([]types.BlobObject, error) { return nil, nil }

func (nopBlobs) PublicURL(key string) string { return "http://blob.test/b/" + key }

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + nonWord.ReplaceAllString(t.Name(), "_") + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := configs.Defaults()
	respCache := cache.New(kv.NewMemoryClient())
	deps := service.Deps{DB: db, Blobs: nopBlobs{}, Cache: respCache, Config: cfg}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(service.WithDeps(c.Request.Context(), deps))
		c.Next()
	})

	v1 := r.Group("/api/v1")
	RegisterPublicRoutes(v1, Options{Cache: respCache, Config: &cfg})
	RegisterAdminRoutes(v1)
	RegisterSchedulerRoutes(v1)

	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestWishesCacheInvalidatedOnCreate(t *testing.T) {
	r := newEngine(t)

	if w := do(r, http.MethodGet, "/api/v1/wishes", ""); w.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first read: %v", w.Header())
	}

	if w := do(r, http.MethodGet, "/api/v1/wishes", ""); w.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second read: %v", w.Header())
	}

	if w := do(r, http.MethodPost, "/api/v1/wishes", `{"name":"Nana","message":"Love you"}`); w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body)
	}

	w := do(r, http.MethodGet, "/api/v1/wishes", "")
	if w.Header().Get("X-Cache") != "MISS" || !strings.Contains(w.Body.String(), "Love you") {
		t.Fatalf("after create: %v %s", w.Header(), w.Body)
	}
}

func TestLetterCountCacheInvalidatedOnSeal(t *testing.T) {
	r := newEngine(t)

	if w := do(r, http.MethodGet, "/api/v1/letters/count", ""); !strings.Contains(w.Body.String(), `"count":0`) {
		t.Fatalf("initial count: %s", w.Body)
	}

	if w := do(r, http.MethodPost, "/api/v1/letters", `{"name":"Dad","content":"one day"}`); w.Code != http.StatusCreated {
		t.Fatalf("seal: %d %s", w.Code, w.Body)
	}

	if w := do(r, http.MethodGet, "/api/v1/letters/count", ""); !strings.Contains(w.Body.String(), `"count":1`) {
		t.Fatalf("count after seal: %s", w.Body)
	}
}

func TestGalleryNeverCached(t *testing.T) {
	r := newEngine(t)

	for range 2 {
		w := do(r, http.MethodGet, "/api/v1/gallery", "")
		if w.Code != http.StatusOK || w.Header().Get("X-Cache") != "" {
			t.Fatalf("gallery: %d %v", w.Code, w.Header())
		}
	}
}

func TestAdminRouteRegistered(t *testing.T) {
	r := newEngine(t)

	w := do(r, http.MethodPost, "/api/v1/admin", `{"action":"verify","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("admin: %d %s", w.Code, w.Body)
	}
}

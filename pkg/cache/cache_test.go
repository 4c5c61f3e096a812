package cache_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yeisme/keepsake/pkg/cache"
	"github.com/yeisme/keepsake/pkg/internal/storage/kv"
)

type wishView struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func newCache(t *testing.T) (*cache.Cache, *kv.Client) {
	t.Helper()

	store := kv.NewMemoryClient()
	t.Cleanup(func() { _ = store.Close() })

	return cache.New(store), store
}

func TestTagKey(t *testing.T) {
	a := cache.TagKey(cache.TagWishes, "GET /api/v1/wishes")
	b := cache.TagKey(cache.TagWishes, "GET /api/v1/wishes")
	c := cache.TagKey(cache.TagWishes, "GET /api/v1/wishes?x=1")

	if a != b {
		t.Fatalf("TagKey not stable: %q vs %q", a, b)
	}

	if a == c {
		t.Fatalf("different raw keys collided: %q", a)
	}

	if !strings.HasPrefix(a, "ks.cache.wishes.") {
		t.Fatalf("unexpected key %q", a)
	}

	if strings.Contains(a, ":") {
		t.Fatalf("key must not contain ':' (%q)", a)
	}
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	c, _ := newCache(t)
	key := cache.TagKey(cache.TagWishes, "k")

	if _, err := cache.Get[wishView](ctx, c, key); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("Get on empty cache: err=%v, want ErrNotFound", err)
	}

	want := wishView{Name: "Grandpa", Message: "Happy first birthday"}
	if err := cache.Set(ctx, c, key, want, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := cache.Get[wishView](ctx, c, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if got != want {
		t.Fatalf("Get = %+v, want %+v", got, want)
	}
}

func TestGetOrSet(t *testing.T) {
	ctx := context.Background()
	c, _ := newCache(t)
	key := cache.TagKey(cache.TagLetters, "count")

	calls := 0
	getter := func() (int64, error) {
		calls++
		return 7, nil
	}

	for range 3 {
		v, err := cache.GetOrSet(ctx, c, key, getter, time.Minute)
		if err != nil {
			t.Fatalf("GetOrSet: %v", err)
		}

		if v != 7 {
			t.Fatalf("GetOrSet = %d", v)
		}
	}

	if calls != 1 {
		t.Fatalf("getter called %d times, want 1", calls)
	}
}

func TestGetOrSetGetterError(t *testing.T) {
	ctx := context.Background()
	c, store := newCache(t)
	key := cache.TagKey(cache.TagVoice, "list")
	boom := errors.New("boom")

	_, err := cache.GetOrSet(ctx, c, key, func() ([]wishView, error) { return nil, boom }, time.Minute)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	if ok, _ := store.Exists(ctx, key); ok {
		t.Fatal("failed getter result must not be cached")
	}
}

func TestInvalidateByTag(t *testing.T) {
	ctx := context.Background()
	c, store := newCache(t)

	wishKey := cache.TagKey(cache.TagWishes, "a")
	wishKey2 := cache.TagKey(cache.TagWishes, "b")
	firstKey := cache.TagKey(cache.TagFirsts, "a")

	for _, k := range []string{wishKey, wishKey2, firstKey} {
		if err := cache.Set(ctx, c, k, "v", time.Minute); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	c.Invalidate(ctx, cache.TagWishes)

	for _, k := range []string{wishKey, wishKey2} {
		if ok, _ := store.Exists(ctx, k); ok {
			t.Errorf("%s survived invalidation", k)
		}
	}

	if ok, _ := store.Exists(ctx, firstKey); !ok {
		t.Error("other tags must be untouched")
	}
}

func TestInvalidateNil(t *testing.T) {
	var c *cache.Cache
	c.Invalidate(context.Background(), cache.TagWishes)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	c, store := newCache(t)

	_ = cache.Set(ctx, c, cache.TagKey(cache.TagMilestones, "x"), 1, time.Minute)
	_ = store.Set(ctx, "ks.other", []byte("keep"), 0)

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	keys, _ := store.Keys(ctx, "*")
	if len(keys) != 1 || keys[0] != "ks.other" {
		t.Fatalf("keys after Clear = %v", keys)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/yeisme/keepsake/pkg/cache"
	"github.com/yeisme/keepsake/pkg/internal/model"
)

func TestWishes(t *testing.T) {
	env := newTestEnv(t)
	svc := &WishService{db: env.db, events: env.rec, cache: env.rec}
	ctx := context.Background()

	for _, tc := range []struct{ name, msg string }{
		{"", "hi"},
		{"Aunt", "   "},
		{"Aunt", strings.Repeat("a", MaxWishLength+1)},
	} {
		if _, err := svc.Create(ctx, tc.name, tc.msg); !errors.Is(err, ErrValidation) {
			t.Errorf("Create(%q, %d chars) err=%v", tc.name, len(tc.msg), err)
		}
	}

	w, err := svc.Create(ctx, "  Aunt Mei ", strings.Repeat("好", MaxWishLength))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if w.GuestName != "Aunt Mei" || w.ID == "" {
		t.Fatalf("wish = %+v", w)
	}

	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %v, %v", list, err)
	}

	if len(env.rec.invalidated) != 1 || env.rec.invalidated[0] != cache.TagWishes {
		t.Fatalf("invalidated = %v", env.rec.invalidated)
	}
}

func TestLettersNeverExposeContent(t *testing.T) {
	env := newTestEnv(t)
	svc := &LetterService{db: env.db, events: env.rec, cache: env.rec}
	ctx := context.Background()

	if err := svc.Seal(ctx, "Mum", "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank content err=%v", err)
	}

	for _, name := range []string{"Mum", "Dad"} {
		if err := svc.Seal(ctx, name, "Open this when you turn 18"); err != nil {
			t.Fatalf("seal: %v", err)
		}
	}

	n, err := svc.Count(ctx)
	if err != nil || n != 2 {
		t.Fatalf("count = %d, %v", n, err)
	}

	for _, p := range env.rec.payloads {
		if strings.Contains(fmt.Sprintf("%+v", p), "turn 18") {
			t.Fatalf("event leaked letter content: %+v", p)
		}
	}
}

func TestVoiceNotes(t *testing.T) {
	env := newTestEnv(t)
	svc := newVoiceService(env.deps)
	ctx := context.Background()

	audio := filePart("recording", "audio/webm", "ogg")

	if _, err := svc.Create(ctx, " ", ptr(3.0), &audio); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank name err=%v", err)
	}

	if _, err := svc.Create(ctx, "Uncle", ptr(3.0), nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing audio err=%v", err)
	}

	note, err := svc.Create(ctx, "Uncle", ptr(12.6), &audio)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if note.DurationSeconds == nil || *note.DurationSeconds != 13 {
		t.Fatalf("duration = %v", note.DurationSeconds)
	}

	keys := env.blobs.keys()
	if len(keys) != 1 || !strings.HasPrefix(keys[0], "voice/") || !strings.HasSuffix(keys[0], ".webm") {
		t.Fatalf("keys = %v", keys)
	}

	if env.rec.invalidated[0] != cache.TagVoice {
		t.Fatalf("invalidated = %v", env.rec.invalidated)
	}
}

func TestVoiceDurationClamp(t *testing.T) {
	svc := &VoiceService{}
	svc.cfg.MaxDurationSeconds = 30

	cases := []struct {
		in   *float64
		want *int
	}{
		{nil, nil},
		{ptr(-1.0), nil},
		{ptr(math.NaN()), nil},
		{ptr(math.Inf(1)), nil},
		{ptr(0.4), ptr(0)},
		{ptr(29.5), ptr(30)},
		{ptr(95.0), ptr(30)},
	}

	for _, tc := range cases {
		got := svc.clampDuration(tc.in)
		if (got == nil) != (tc.want == nil) || (got != nil && *got != *tc.want) {
			t.Errorf("clampDuration(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestGalleryOnlyApproved(t *testing.T) {
	env := newTestEnv(t)
	svc := &GalleryService{db: env.db}
	ctx := context.Background()
	now := time.Now().UTC()

	img := env.seedUpload(t, "a", model.FileTypeImage, true, now.Add(-2*time.Minute))
	vid := env.seedUpload(t, "b", model.FileTypeVideo, true, now.Add(-time.Minute))
	env.seedUpload(t, "c", model.FileTypeImage, false, now)

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(all) != 2 || all[0].ID != vid.ID || all[1].ID != img.ID {
		t.Fatalf("gallery = %+v", all)
	}

	images, err := svc.List(ctx, "image")
	if err != nil || len(images) != 1 || images[0].ID != img.ID {
		t.Fatalf("images = %+v, %v", images, err)
	}

	if _, err := svc.List(ctx, "audio"); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad type err=%v", err)
	}

	// 拒绝后立即从画廊消失
	if err := newModerationService(env.deps).Reject(ctx, vid.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	after, _ := svc.List(ctx, "")
	if len(after) != 1 || after[0].ID != img.ID {
		t.Fatalf("after reject = %+v", after)
	}
}

package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/yeisme/keepsake/pkg/internal/model"
	"github.com/yeisme/keepsake/pkg/queue"
)

var familyKey = regexp.MustCompile(`^family/\d+-[0-9a-z]{16}\.[a-z0-9]+$`)

func TestIntakeValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := newIntakeService(env.deps)
	ctx := context.Background()

	one := []FilePart{filePart("a.jpg", "image/jpeg", "a")}

	cases := []struct {
		name string
		req  SubmitRequest
	}{
		{"no files", SubmitRequest{UploaderName: "Nana"}},
		{"blank name", SubmitRequest{UploaderName: "   ", Files: one}},
		{"too many files", SubmitRequest{UploaderName: "Nana", Files: make([]FilePart, 11)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Submit(ctx, tc.req); !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}

	big := filePart("big.mov", "video/quicktime", "x")
	big.Size = env.deps.Config.Intake.MaxFileSize() + 1

	if _, err := svc.Submit(ctx, SubmitRequest{UploaderName: "Nana", Files: []FilePart{big}}); !errors.Is(err, ErrValidation) {
		t.Fatalf("oversized file err = %v", err)
	}

	if keys := env.blobs.keys(); len(keys) != 0 {
		t.Fatalf("validation must happen before any upload, got %v", keys)
	}
}

func TestIntakeSubmit(t *testing.T) {
	env := newTestEnv(t)
	svc := newIntakeService(env.deps)
	ctx := context.Background()

	records, err := svc.Submit(ctx, SubmitRequest{
		UploaderName: "  Grandma  ",
		Message:      "   ",
		Files: []FilePart{
			filePart("Party.JPG", "image/jpeg", "img"),
			filePart("clip.mp4", "video/mp4", "vid"),
			filePart("noext", "application/octet-stream", "raw"),
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("records = %d", len(records))
	}

	wantTypes := []model.FileType{model.FileTypeImage, model.FileTypeVideo, model.FileTypeImage}
	for i, rec := range records {
		if rec.UploaderName != "Grandma" || rec.MemoryMessage != nil || rec.Approved {
			t.Errorf("record %d = %+v", i, rec)
		}

		if rec.FileType != wantTypes[i] {
			t.Errorf("record %d type = %s, want %s", i, rec.FileType, wantTypes[i])
		}
	}

	keys := env.blobs.keys()
	if len(keys) != 3 {
		t.Fatalf("keys = %v", keys)
	}

	exts := map[string]bool{}

	for _, k := range keys {
		if !familyKey.MatchString(k) {
			t.Errorf("unexpected key %q", k)
		}

		exts[k[strings.LastIndex(k, ".")+1:]] = true
	}

	for _, want := range []string{"jpg", "mp4", "bin"} {
		if !exts[want] {
			t.Errorf("missing extension %s in %v", want, keys)
		}
	}

	var n int64
	env.db.Model(&model.FamilyUpload{}).Count(&n)

	if n != 3 {
		t.Fatalf("rows = %d", n)
	}

	if env.rec.published(queue.TopicUploadSubmitted) != 3 {
		t.Fatalf("events = %v", env.rec.topics)
	}
}

func TestIntakeAutoApproveAndMessage(t *testing.T) {
	env := newTestEnv(t)
	env.deps.Config.Intake.AutoApprove = true
	svc := newIntakeService(env.deps)

	records, err := svc.Submit(context.Background(), SubmitRequest{
		UploaderName: "Papa",
		Message:      "  Happy birthday  ",
		Files:        []FilePart{filePart("a.png", "image/png", "a")},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	rec := records[0]
	if !rec.Approved || rec.MemoryMessage == nil || *rec.MemoryMessage != "Happy birthday" {
		t.Fatalf("record = %+v", rec)
	}
}

func TestIntakeUploadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.blobs.failOn = "broken"
	svc := newIntakeService(env.deps)

	_, err := svc.Submit(context.Background(), SubmitRequest{
		UploaderName: "Cousin",
		Files: []FilePart{
			filePart("ok.jpg", "image/jpeg", "fine"),
			filePart("bad.jpg", "image/jpeg", "broken"),
		},
	})
	if !errors.Is(err, ErrUpload) {
		t.Fatalf("err = %v, want ErrUpload", err)
	}

	if env.rec.published(queue.TopicUploadSubmitted) != 0 {
		t.Fatal("failed submission must not publish events")
	}
}

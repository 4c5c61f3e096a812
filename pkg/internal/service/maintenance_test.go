package service

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/yeisme/keepsake/pkg/internal/model"
	"github.com/yeisme/keepsake/pkg/internal/types"
)

func TestPendingCount(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now().UTC()

	env.seedUpload(t, "a", model.FileTypeImage, false, now)
	env.seedUpload(t, "b", model.FileTypeImage, false, now)
	env.seedUpload(t, "c", model.FileTypeImage, true, now)

	n, err := NewMaintenanceService(env.deps).PendingCount(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("pending = %d, %v", n, err)
	}
}

func TestSweepOrphans(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)

	put := func(key string, at time.Time) {
		env.blobs.objects[key] = types.BlobObject{Key: key, LastModified: at}
	}

	put("family/kept.jpg", old)
	put("family/orphan.jpg", old)
	put("family/fresh.jpg", time.Now())
	put("voice/orphan.webm", old)
	put("firsts/photo.jpg", old)
	put("other/untouched.bin", old)

	env.db.Create(&model.FamilyUpload{UploaderName: "a", FileURL: env.blobs.PublicURL("family/kept.jpg"), FileType: model.FileTypeImage})
	env.db.Create(&model.BabyFirst{MilestoneKey: "first_smile", MilestoneTitle: "Smile", PhotoURL: ptr(env.blobs.PublicURL("firsts/photo.jpg")), DisplayOrder: 1})

	res, err := NewMaintenanceService(env.deps).SweepOrphans(ctx, []string{"family", "voice", "milestones", "firsts"}, 24*time.Hour)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}

	if res.Scanned != 5 || res.Removed != 2 || res.Failed != 0 {
		t.Fatalf("result = %+v", res)
	}

	slices.Sort(env.blobs.removed)

	if !slices.Equal(env.blobs.removed, []string{"family/orphan.jpg", "voice/orphan.webm"}) {
		t.Fatalf("removed = %v", env.blobs.removed)
	}
}

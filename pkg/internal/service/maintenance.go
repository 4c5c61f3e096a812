package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/keepsake/pkg/internal/model"
	"github.com/yeisme/keepsake/pkg/internal/types"
)

// SweepResult 一次孤儿对象清理的统计.
type SweepResult struct {
	Scanned int
	Removed int
	Failed  int
}

// MaintenanceService 定时任务使用的后台操作.
type MaintenanceService struct {
	db     *gorm.DB
	blobs  BlobStore
	bucket string
	now    func() time.Time
}

// NewMaintenanceService 使用显式依赖构造.
func NewMaintenanceService(d Deps) *MaintenanceService {
	return &MaintenanceService{db: d.DB, blobs: d.Blobs, bucket: d.Config.S3.BucketName, now: time.Now}
}

// PendingCount 返回待审核投稿数.
func (s *MaintenanceService) PendingCount(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.FamilyUpload{}).Where("approved = ?", false).Count(&n).Error; err != nil {
		return 0, storeError("count pending uploads", err)
	}

	return n, nil
}

// SweepOrphans 删除 prefixes 下超过宽限期且没有任何记录引用的对象.
func (s *MaintenanceService) SweepOrphans(ctx context.Context, prefixes []string, grace time.Duration) (SweepResult, error) {
	referenced, err := s.referencedKeys(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	cutoff := s.now().Add(-grace)

	var res SweepResult

	for _, prefix := range prefixes {
		objects, err := s.blobs.List(ctx, prefix+"/")
		if err != nil {
			return res, newError(ErrStore, "failed to list objects", err)
		}

		for _, obj := range objects {
			res.Scanned++

			if !orphaned(obj, referenced, cutoff) {
				continue
			}

			if err := s.blobs.Remove(ctx, obj.Key); err != nil {
				res.Failed++
				continue
			}

			res.Removed++
		}
	}

	return res, nil
}

func orphaned(obj types.BlobObject, referenced map[string]struct{}, cutoff time.Time) bool {
	if _, ok := referenced[obj.Key]; ok {
		return false
	}

	return obj.LastModified.Before(cutoff)
}

// referencedKeys 收集所有表中引用的对象键.
func (s *MaintenanceService) referencedKeys(ctx context.Context) (map[string]struct{}, error) {
	keys := map[string]struct{}{}

	sources := []struct {
		model  any
		column string
	}{
		{&model.FamilyUpload{}, "file_url"},
		{&model.MilestoneMedia{}, "file_url"},
		{&model.VoiceNote{}, "audio_url"},
		{&model.BabyFirst{}, "photo_url"},
	}

	for _, src := range sources {
		var urls []string
		if err := s.db.WithContext(ctx).Model(src.model).Where(src.column+" IS NOT NULL").Pluck(src.column, &urls).Error; err != nil {
			return nil, storeError("collect referenced objects", err)
		}

		for _, u := range urls {
			if k := keyFromURL(u, s.bucket); k != "" {
				keys[k] = struct{}{}
			}
		}
	}

	return keys, nil
}

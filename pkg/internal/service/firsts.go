package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/yeisme/keepsake/pkg/cache"
	"github.com/yeisme/keepsake/pkg/internal/model"
	"github.com/yeisme/keepsake/pkg/metrics"
	"github.com/yeisme/keepsake/pkg/queue"
)

// FirstsService "第一次"看板.
type FirstsService struct {
	db     *gorm.DB
	events queue.Publisher
	cache  Invalidator
}

// NewFirstsService 从请求上下文构造.
func NewFirstsService(ctx context.Context) *FirstsService {
	return newFirstsService(DepsFromContext(ctx))
}

func newFirstsService(d Deps) *FirstsService {
	return &FirstsService{db: d.DB, events: d.Events, cache: d.Cache}
}

// List 按 display_order 升序返回. 相同序号之间的顺序不固定.
func (s *FirstsService) List(ctx context.Context) ([]model.BabyFirst, error) {
	firsts := []model.BabyFirst{}
	if err := s.db.WithContext(ctx).Order("display_order ASC").Find(&firsts).Error; err != nil {
		return nil, storeError("list firsts", err)
	}

	return firsts, nil
}

// Update 只修改提供的字段；提供空白值则清空该字段.
func (s *FirstsService) Update(ctx context.Context, id string, caption, photoURL *string) error {
	updates := map[string]any{}
	if caption != nil {
		updates["caption"] = normalizeOptional(caption)
	}

	if photoURL != nil {
		updates["photo_url"] = normalizeOptional(photoURL)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var first model.BabyFirst
		if err := tx.Select("id").Where("id = ?", id).First(&first).Error; err != nil {
			return err
		}

		if len(updates) == 0 {
			return nil
		}

		return tx.Model(&model.BabyFirst{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return mapRecordError("first", "update first", err)
	}

	s.cache.Invalidate(ctx, cache.TagFirsts)
	metrics.ModerationActions.WithLabelValues("update_first").Inc()
	s.events.Publish(ctx, queue.TopicFirstUpdated, queue.FirstUpdatedPayload{
		FirstID:         id,
		CaptionChanged:  caption != nil,
		PhotoURLChanged: photoURL != nil,
	})

	return nil
}

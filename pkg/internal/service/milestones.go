package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/yeisme/keepsake/pkg/cache"
	"github.com/yeisme/keepsake/pkg/internal/model"
	"github.com/yeisme/keepsake/pkg/metrics"
	"github.com/yeisme/keepsake/pkg/queue"
)

// MilestoneService 月度里程碑及其媒体.
type MilestoneService struct {
	db     *gorm.DB
	events queue.Publisher
	cache  Invalidator
}

// NewMilestoneService 从请求上下文构造.
func NewMilestoneService(ctx context.Context) *MilestoneService {
	return newMilestoneService(DepsFromContext(ctx))
}

func newMilestoneService(d Deps) *MilestoneService {
	return &MilestoneService{db: d.DB, events: d.Events, cache: d.Cache}
}

// List 按月份升序返回里程碑，媒体按创建时间升序.
func (s *MilestoneService) List(ctx context.Context) ([]model.Milestone, error) {
	milestones := []model.Milestone{}

	err := s.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Order("month_number ASC").
		Find(&milestones).Error
	if err != nil {
		return nil, storeError("list milestones", err)
	}

	for i := range milestones {
		if milestones[i].Media == nil {
			milestones[i].Media = []model.MilestoneMedia{}
		}
	}

	return milestones, nil
}

// AddMedia 为里程碑添加一条媒体.
func (s *MilestoneService) AddMedia(ctx context.Context, milestoneID, fileURL, fileType string) (model.MilestoneMedia, error) {
	ft := model.FileType(fileType)
	if !ft.Valid() {
		return model.MilestoneMedia{}, validationError("fileType must be image or video")
	}

	if strings.TrimSpace(fileURL) == "" {
		return model.MilestoneMedia{}, validationError("fileUrl is required")
	}

	media := model.MilestoneMedia{MilestoneID: milestoneID, FileURL: fileURL, FileType: ft}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Milestone
		if err := tx.Select("id").Where("id = ?", milestoneID).First(&m).Error; err != nil {
			return err
		}

		return tx.Create(&media).Error
	})
	if err != nil {
		return model.MilestoneMedia{}, mapRecordError("milestone", "add milestone media", err)
	}

	s.changed(ctx, "add_milestone_media", queue.TopicMilestoneMediaAdded, queue.MilestoneMediaPayload{
		MilestoneID: milestoneID,
		MediaID:     media.ID,
		FileURL:     media.FileURL,
		FileType:    string(media.FileType),
	})

	return media, nil
}

// DeleteMedia 删除一条里程碑媒体.
func (s *MilestoneService) DeleteMedia(ctx context.Context, mediaID string) error {
	res := s.db.WithContext(ctx).Delete(&model.MilestoneMedia{}, "id = ?", mediaID)
	if res.Error != nil {
		return storeError("delete milestone media", res.Error)
	}

	if res.RowsAffected == 0 {
		return notFound("milestone media")
	}

	s.changed(ctx, "delete_milestone_media", queue.TopicMilestoneMediaDeleted, queue.MilestoneMediaPayload{MediaID: mediaID})

	return nil
}

// UpdateCaption 修改说明. nil 或空白清除说明.
func (s *MilestoneService) UpdateCaption(ctx context.Context, milestoneID string, caption *string) error {
	value := normalizeOptional(caption)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Milestone
		if err := tx.Select("id").Where("id = ?", milestoneID).First(&m).Error; err != nil {
			return err
		}

		return tx.Model(&model.Milestone{}).Where("id = ?", milestoneID).Update("caption", value).Error
	})
	if err != nil {
		return mapRecordError("milestone", "update milestone caption", err)
	}

	s.changed(ctx, "update_milestone_caption", queue.TopicMilestoneCaptionUpdated, queue.MilestoneCaptionPayload{
		MilestoneID: milestoneID,
		Cleared:     value == nil,
	})

	return nil
}

func (s *MilestoneService) changed(ctx context.Context, action, topic string, payload any) {
	s.cache.Invalidate(ctx, cache.TagMilestones)
	metrics.ModerationActions.WithLabelValues(action).Inc()
	s.events.Publish(ctx, topic, payload)
}

// normalizeOptional 去除首尾空白，空串视为 nil.
func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}

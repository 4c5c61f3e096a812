package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yeisme/keepsake/pkg/internal/model"
	"github.com/yeisme/keepsake/pkg/metrics"
	"github.com/yeisme/keepsake/pkg/queue"
)

// ModerationService 投稿审核.
type ModerationService struct {
	db     *gorm.DB
	events queue.Publisher
}

// NewModerationService 从请求上下文构造.
func NewModerationService(ctx context.Context) *ModerationService {
	return newModerationService(DepsFromContext(ctx))
}

func newModerationService(d Deps) *ModerationService {
	return &ModerationService{db: d.DB, events: d.Events}
}

// List 返回全部投稿（含未通过的），最新在前.
func (s *ModerationService) List(ctx context.Context) ([]model.FamilyUpload, error) {
	uploads := []model.FamilyUpload{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&uploads).Error; err != nil {
		return nil, storeError("list uploads", err)
	}

	return uploads, nil
}

// Approve 设为公开. 已公开时视为成功.
func (s *ModerationService) Approve(ctx context.Context, id string) error {
	return s.setApproved(ctx, id, true, queue.TopicUploadApproved)
}

// Reject 设为不公开.
func (s *ModerationService) Reject(ctx context.Context, id string) error {
	return s.setApproved(ctx, id, false, queue.TopicUploadRejected)
}

func (s *ModerationService) setApproved(ctx context.Context, id string, approved bool, topic string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var upload model.FamilyUpload
		if err := tx.Select("id").Where("id = ?", id).First(&upload).Error; err != nil {
			return err
		}

		return tx.Model(&model.FamilyUpload{}).Where("id = ?", id).Update("approved", approved).Error
	})
	if err != nil {
		return mapRecordError("upload", "update upload", err)
	}

	action := "reject"
	if approved {
		action = "approve"
	}

	metrics.ModerationActions.WithLabelValues(action).Inc()
	s.events.Publish(ctx, topic, queue.ModerationPayload{UploadID: id, Action: action, Approved: &approved})

	return nil
}

// Delete 永久删除投稿记录. 对象文件由清理任务回收.
func (s *ModerationService) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var upload model.FamilyUpload
		if err := tx.Select("id").Where("id = ?", id).First(&upload).Error; err != nil {
			return err
		}

		return tx.Delete(&model.FamilyUpload{}, "id = ?", id).Error
	})
	if err != nil {
		return mapRecordError("upload", "delete upload", err)
	}

	metrics.ModerationActions.WithLabelValues("delete").Inc()
	s.events.Publish(ctx, queue.TopicUploadDeleted, queue.ModerationPayload{UploadID: id, Action: "delete"})

	return nil
}

// mapRecordError 把 gorm 的未找到转换为 ErrNotFound，其余为 ErrStore.
func mapRecordError(what, op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what)
	}

	return storeError(op, err)
}

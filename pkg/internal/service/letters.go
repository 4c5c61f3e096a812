package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/yeisme/keepsake/pkg/cache"
	"github.com/yeisme/keepsake/pkg/internal/model"
	"github.com/yeisme/keepsake/pkg/queue"
)

// LetterService 写给未来的信. 只写入与计数，内容从不读出.
type LetterService struct {
	db     *gorm.DB
	events queue.Publisher
	cache  Invalidator
}

// NewLetterService 从请求上下文构造.
func NewLetterService(ctx context.Context) *LetterService {
	d := DepsFromContext(ctx)
	return &LetterService{db: d.DB, events: d.Events, cache: d.Cache}
}

// Seal 保存一封信.
func (s *LetterService) Seal(ctx context.Context, name, content string) error {
	name = strings.TrimSpace(name)
	content = strings.TrimSpace(content)

	if name == "" || content == "" {
		return validationError("name and letter are required")
	}

	letter := model.FutureLetter{SenderName: name, LetterContent: content}
	if err := s.db.WithContext(ctx).Create(&letter).Error; err != nil {
		return storeError("seal letter", err)
	}

	s.cache.Invalidate(ctx, cache.TagLetters)
	s.events.Publish(ctx, queue.TopicLetterSealed, queue.LetterSealedPayload{LetterID: letter.ID, SenderName: letter.SenderName})

	return nil
}

// Count 返回已封存的信件数.
func (s *LetterService) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.FutureLetter{}).Count(&n).Error; err != nil {
		return 0, storeError("count letters", err)
	}

	return n, nil
}

package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/yeisme/keepsake/pkg/cache"
	"github.com/yeisme/keepsake/pkg/internal/model"
	"github.com/yeisme/keepsake/pkg/queue"
)

// MaxWishLength 祝福正文最大字符数.
const MaxWishLength = 1000

// WishService 来宾祝福.
type WishService struct {
	db     *gorm.DB
	events queue.Publisher
	cache  Invalidator
}

// NewWishService 从请求上下文构造.
func NewWishService(ctx context.Context) *WishService {
	d := DepsFromContext(ctx)
	return &WishService{db: d.DB, events: d.Events, cache: d.Cache}
}

// List 返回全部祝福，最新在前.
func (s *WishService) List(ctx context.Context) ([]model.GuestWish, error) {
	wishes := []model.GuestWish{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&wishes).Error; err != nil {
		return nil, storeError("list wishes", err)
	}

	return wishes, nil
}

// Create 保存一条祝福. 姓名与正文去除首尾空白后不能为空.
func (s *WishService) Create(ctx context.Context, name, message string) (model.GuestWish, error) {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)

	if name == "" || message == "" {
		return model.GuestWish{}, validationError("name and message are required")
	}

	if utf8.RuneCountInString(message) > MaxWishLength {
		return model.GuestWish{}, validationError("message must be at most 1000 characters")
	}

	wish := model.GuestWish{GuestName: name, Message: message}
	if err := s.db.WithContext(ctx).Create(&wish).Error; err != nil {
		return model.GuestWish{}, storeError("save wish", err)
	}

	s.cache.Invalidate(ctx, cache.TagWishes)
	s.events.Publish(ctx, queue.TopicWishCreated, queue.WishCreatedPayload{WishID: wish.ID, GuestName: wish.GuestName})

	return wish, nil
}

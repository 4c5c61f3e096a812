package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/yeisme/keepsake/pkg/internal/model"
)

// GalleryService 公开画廊，只返回已通过审核的投稿.
type GalleryService struct {
	db *gorm.DB
}

// NewGalleryService 从请求上下文构造.
func NewGalleryService(ctx context.Context) *GalleryService {
	return &GalleryService{db: DepsFromContext(ctx).DB}
}

// List 返回已通过的投稿，最新在前. fileType 为空时不过滤类型.
func (s *GalleryService) List(ctx context.Context, fileType string) ([]model.FamilyUpload, error) {
	q := s.db.WithContext(ctx).Where("approved = ?", true)

	if fileType != "" {
		ft := model.FileType(fileType)
		if !ft.Valid() {
			return nil, validationError("type must be image or video")
		}

		q = q.Where("file_type = ?", ft)
	}

	uploads := []model.FamilyUpload{}
	if err := q.Order("created_at DESC").Find(&uploads).Error; err != nil {
		return nil, storeError("list gallery", err)
	}

	return uploads, nil
}

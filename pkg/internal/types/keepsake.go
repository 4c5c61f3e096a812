package types

import "github.com/yeisme/keepsake/pkg/internal/model"

// SuccessResponse 通用成功响应.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse 通用错误响应.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UploadsResponse 投稿列表（公开画廊与管理列表共用）.
type UploadsResponse struct {
	Uploads []model.FamilyUpload `json:"uploads"`
}

// MilestonesResponse 里程碑列表.
type MilestonesResponse struct {
	Milestones []model.Milestone `json:"milestones"`
}

// FirstsResponse "第一次"列表.
type FirstsResponse struct {
	Firsts []model.BabyFirst `json:"firsts"`
}

// MediaResponse add_milestone_media 的响应.
type MediaResponse struct {
	Success bool                 `json:"success"`
	Media   model.MilestoneMedia `json:"media"`
}

// GalleryQuery 画廊查询参数.
type GalleryQuery struct {
	Type string `form:"type" rule:"omitempty,oneof=image video"`
}

// CreateWishRequest 提交祝福.
type CreateWishRequest struct {
	Name    string `json:"name"    rule:"nonblank,max=255"`
	Message string `json:"message" rule:"nonblank,max=1000"`
}

// WishResponse 单条祝福.
type WishResponse struct {
	Wish model.GuestWish `json:"wish"`
}

// WishesResponse 祝福列表.
type WishesResponse struct {
	Wishes []model.GuestWish `json:"wishes"`
}

// VoiceNoteResponse 单条语音.
type VoiceNoteResponse struct {
	VoiceNote model.VoiceNote `json:"voice_note"`
}

// VoiceNotesResponse 语音列表.
type VoiceNotesResponse struct {
	VoiceNotes []model.VoiceNote `json:"voice_notes"`
}

// SealLetterRequest 封存一封写给未来的信.
type SealLetterRequest struct {
	Name    string `json:"name"    rule:"nonblank,max=255"`
	Content string `json:"content" rule:"nonblank"`
}

// LetterCountResponse 信件数量.
type LetterCountResponse struct {
	Count int64 `json:"count"`
}

// AdminMediaResponse 管理端媒体上传结果.
type AdminMediaResponse struct {
	URL      string         `json:"url"`
	FileType model.FileType `json:"file_type"`
}

// Admin media 目录.
const (
	MediaFolderMilestones = "milestones"
	MediaFolderFirsts     = "firsts"
)

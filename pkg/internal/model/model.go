// Package model 定义持久化实体. 所有 id 为 UUID 字符串，在 BeforeCreate 中分配.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileType 媒体类型.
type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
)

// Valid 是否为已知类型.
func (t FileType) Valid() bool {
	return t == FileTypeImage || t == FileTypeVideo
}

// assignID 仅在 id 为空时分配.
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// All 返回需要迁移的全部模型.
func All() []any {
	return []any{
		&FamilyUpload{},
		&Milestone{},
		&MilestoneMedia{},
		&GuestWish{},
		&VoiceNote{},
		&FutureLetter{},
		&BabyFirst{},
	}
}

// FamilyUpload 家人投稿的照片或视频，需审核后公开.
type FamilyUpload struct {
	ID            string    `gorm:"primaryKey;size:36"         json:"id"`
	UploaderName  string    `gorm:"size:255;not null"          json:"uploader_name"`
	MemoryMessage *string   `gorm:"type:text"                  json:"memory_message"`
	FileURL       string    `gorm:"size:1024;not null"         json:"file_url"`
	FileType      FileType  `gorm:"size:16;not null;index"     json:"file_type"`
	Approved      bool      `gorm:"not null;default:false;index" json:"approved"`
	CreatedAt     time.Time `gorm:"index"                      json:"created_at"`
}

func (FamilyUpload) TableName() string { return "family_uploads" }

func (u *FamilyUpload) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	return nil
}

// Milestone 月度里程碑，由 seed 命令创建.
type Milestone struct {
	ID          string           `gorm:"primaryKey;size:36"          json:"id"`
	MonthNumber int              `gorm:"not null;uniqueIndex"        json:"month_number"`
	MonthLabel  string           `gorm:"size:64;not null"            json:"month_label"`
	Caption     *string          `gorm:"type:text"                   json:"caption"`
	Media       []MilestoneMedia `gorm:"foreignKey:MilestoneID;constraint:OnDelete:CASCADE" json:"milestone_media"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Milestone) TableName() string { return "milestones" }

func (m *Milestone) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}

// MilestoneMedia 挂在里程碑下的媒体.
type MilestoneMedia struct {
	ID          string    `gorm:"primaryKey;size:36"    json:"id"`
	MilestoneID string    `gorm:"size:36;not null;index" json:"milestone_id"`
	FileURL     string    `gorm:"size:1024;not null"    json:"file_url"`
	FileType    FileType  `gorm:"size:16;not null"      json:"file_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func (MilestoneMedia) TableName() string { return "milestone_media" }

func (m *MilestoneMedia) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}

// GuestWish 来宾祝福.
type GuestWish struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	GuestName string    `gorm:"size:255;not null"  json:"guest_name"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"index"              json:"created_at"`
}

func (GuestWish) TableName() string { return "guest_wishes" }

func (w *GuestWish) BeforeCreate(*gorm.DB) error {
	assignID(&w.ID)
	return nil
}

// VoiceNote 来宾语音留言.
type VoiceNote struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	SenderName      string    `gorm:"size:255;not null"  json:"sender_name"`
	AudioURL        string    `gorm:"size:1024;not null" json:"audio_url"`
	DurationSeconds *int      `json:"duration_seconds"`
	CreatedAt       time.Time `gorm:"index"              json:"created_at"`
}

func (VoiceNote) TableName() string { return "voice_notes" }

func (v *VoiceNote) BeforeCreate(*gorm.DB) error {
	assignID(&v.ID)
	return nil
}

// FutureLetter 写给未来的信，内容从不对外返回.
type FutureLetter struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	SenderName    string    `gorm:"size:255;not null"  json:"sender_name"`
	LetterContent string    `gorm:"type:text;not null" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

func (FutureLetter) TableName() string { return "future_letters" }

func (l *FutureLetter) BeforeCreate(*gorm.DB) error {
	assignID(&l.ID)
	return nil
}

// BabyFirst "第一次"看板条目.
type BabyFirst struct {
	ID             string    `gorm:"primaryKey;size:36"      json:"id"`
	MilestoneKey   string    `gorm:"size:64;not null;uniqueIndex" json:"milestone_key"`
	MilestoneTitle string    `gorm:"size:255;not null"       json:"milestone_title"`
	Caption        *string   `gorm:"type:text"               json:"caption"`
	PhotoURL       *string   `gorm:"size:1024"               json:"photo_url"`
	DisplayOrder   int       `gorm:"not null;index"          json:"display_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (BabyFirst) TableName() string { return "baby_firsts" }

func (f *BabyFirst) BeforeCreate(*gorm.DB) error {
	assignID(&f.ID)
	return nil
}

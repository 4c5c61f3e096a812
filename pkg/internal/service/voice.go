package service

import (
	"context"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/keepsake/pkg/cache"
	"github.com/yeisme/keepsake/pkg/configs"
	"github.com/yeisme/keepsake/pkg/internal/model"
	"github.com/yeisme/keepsake/pkg/queue"
)

// VoiceService 来宾语音留言.
type VoiceService struct {
	db     *gorm.DB
	blobs  BlobStore
	events queue.Publisher
	cache  Invalidator
	cfg    configs.VoiceConfig
	now    func() time.Time
}

// NewVoiceService 从请求上下文构造.
func NewVoiceService(ctx context.Context) *VoiceService {
	return newVoiceService(DepsFromContext(ctx))
}

func newVoiceService(d Deps) *VoiceService {
	return &VoiceService{db: d.DB, blobs: d.Blobs, events: d.Events, cache: d.Cache, cfg: d.Config.Voice, now: time.Now}
}

// List 返回全部语音留言，最新在前.
func (s *VoiceService) List(ctx context.Context) ([]model.VoiceNote, error) {
	notes := []model.VoiceNote{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, storeError("list voice notes", err)
	}

	return notes, nil
}

// Create 上传录音并保存记录. duration 为录音秒数，未知时传 nil.
func (s *VoiceService) Create(ctx context.Context, name string, duration *float64, audio *FilePart) (model.VoiceNote, error) {
	name = strings.TrimSpace(name)
	if name == "" || audio == nil {
		return model.VoiceNote{}, validationError("name and audio are required")
	}

	if limit := s.cfg.MaxFileSize(); limit > 0 && audio.Size > limit {
		return model.VoiceNote{}, validationError("audio file is too large")
	}

	key, err := objectKey(s.cfg.Prefix, audio.Name, "webm", s.now())
	if err != nil {
		return model.VoiceNote{}, uploadError(err)
	}

	url, err := uploadPart(ctx, s.blobs, key, *audio)
	if err != nil {
		return model.VoiceNote{}, err
	}

	note := model.VoiceNote{
		SenderName:      name,
		AudioURL:        url,
		DurationSeconds: s.clampDuration(duration),
	}

	if err := s.db.WithContext(ctx).Create(&note).Error; err != nil {
		return model.VoiceNote{}, storeError("save voice note", err)
	}

	s.cache.Invalidate(ctx, cache.TagVoice)
	s.events.Publish(ctx, queue.TopicVoiceCreated, queue.VoiceCreatedPayload{
		VoiceNoteID:     note.ID,
		SenderName:      note.SenderName,
		AudioURL:        note.AudioURL,
		DurationSeconds: note.DurationSeconds,
	})

	return note, nil
}

// clampDuration 四舍五入到整秒并限制在 [0, max]. 无效值返回 nil.
func (s *VoiceService) clampDuration(d *float64) *int {
	if d == nil || math.IsNaN(*d) || math.IsInf(*d, 0) || *d < 0 {
		return nil
	}

	secs := int(math.Round(*d))
	if s.cfg.MaxDurationSeconds > 0 && secs > s.cfg.MaxDurationSeconds {
		secs = s.cfg.MaxDurationSeconds
	}

	return &secs
}

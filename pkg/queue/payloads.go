package queue

import "time"

// EventHeader 所有事件的通用头部.
type EventHeader struct {
	// Topic 冗余记录主题，便于离线转储后定位来源.
	Topic string `json:"topic"`
	// TraceID 来自请求的追踪 ID.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 负载版本.
	Version string `json:"version,omitempty"`
}

// Message 统一信封，Header + Payload.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// UploadSubmittedPayload 新投稿.
type UploadSubmittedPayload struct {
	UploadID     string `json:"upload_id"`
	UploaderName string `json:"uploader_name"`
	FileURL      string `json:"file_url"`
	FileType     string `json:"file_type"`
	Approved     bool   `json:"approved"`
}

// ModerationPayload 审核动作（approve/reject/delete）.
type ModerationPayload struct {
	UploadID string `json:"upload_id"`
	Action   string `json:"action"`
	Approved *bool  `json:"approved,omitempty"`
}

// MilestoneMediaPayload 里程碑媒体增删.
type MilestoneMediaPayload struct {
	MilestoneID string `json:"milestone_id,omitempty"`
	MediaID     string `json:"media_id"`
	FileURL     string `json:"file_url,omitempty"`
	FileType    string `json:"file_type,omitempty"`
}

// MilestoneCaptionPayload 里程碑说明变更.
type MilestoneCaptionPayload struct {
	MilestoneID string `json:"milestone_id"`
	Cleared     bool   `json:"cleared"`
}

// FirstUpdatedPayload "第一次"条目变更，只记录变更了哪些字段.
type FirstUpdatedPayload struct {
	FirstID         string `json:"first_id"`
	CaptionChanged  bool   `json:"caption_changed"`
	PhotoURLChanged bool   `json:"photo_url_changed"`
}

// WishCreatedPayload 新祝福.
type WishCreatedPayload struct {
	WishID    string `json:"wish_id"`
	GuestName string `json:"guest_name"`
}

// VoiceCreatedPayload 新语音留言.
type VoiceCreatedPayload struct {
	VoiceNoteID     string `json:"voice_note_id"`
	SenderName      string `json:"sender_name"`
	AudioURL        string `json:"audio_url"`
	DurationSeconds *int   `json:"duration_seconds,omitempty"`
}

// LetterSealedPayload 封存信件，不携带内容.
type LetterSealedPayload struct {
	LetterID   string `json:"letter_id"`
	SenderName string `json:"sender_name"`
}

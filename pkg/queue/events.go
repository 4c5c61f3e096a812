package queue

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	"github.com/yeisme/keepsake/pkg/configs"
	nlog "github.com/yeisme/keepsake/pkg/log"
)

// Publisher 服务层使用的事件发布接口. 发布是尽力而为的，不返回错误.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any)
}

// Bus 基于 watermill Publisher 的事件发布器，按 events 配置过滤.
type Bus struct {
	pub message.Publisher
	cfg configs.EventsConfig
}

// NewBus 创建事件发布器. pub 为 nil 时所有事件被丢弃.
func NewBus(pub message.Publisher, cfg configs.EventsConfig) *Bus {
	return &Bus{pub: pub, cfg: cfg}
}

// Enabled 判断主题是否需要发布.
func (b *Bus) Enabled(topic string) bool {
	if b == nil || b.pub == nil || !b.cfg.Enabled {
		return false
	}

	switch d, _ := DomainOf(topic); d {
	case DomainUpload:
		return b.cfg.Upload
	case DomainMilestone:
		return b.cfg.Milestone
	case DomainGuest:
		return b.cfg.Guest
	default:
		return true
	}
}

// Publish 编码并发布事件，失败只记录日志.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) {
	if !b.Enabled(topic) {
		return
	}

	opts := []func(*EventHeader){WithProducer(b.cfg.Producer)}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		opts = append(opts, WithTraceID(sc.TraceID().String()))
	}

	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		nlog.Ctx(ctx).Warn().Err(err).Str("topic", topic).Msg("encode event failed")
		return
	}

	if err := b.pub.Publish(topic, msg); err != nil {
		nlog.Ctx(ctx).Warn().Err(err).Str("topic", topic).Msg("publish event failed")
	}
}

// Discard 丢弃所有事件的发布器.
type Discard struct{}

func (Discard) Publish(context.Context, string, any) {}

package queue

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"
)

// Consumer 可注册消费者的 MQ 客户端.
type Consumer interface {
	AddConsumer(name, topic string, handler message.NoPublishHandlerFunc)
}

// RegisterAuditLog 为每个审核主题注册一个把事件写入日志的消费者.
func RegisterAuditLog(c Consumer, logger *zerolog.Logger) {
	for _, topic := range ModerationTopics {
		c.AddConsumer("audit."+topic, topic, AuditHandler(logger))
	}
}

// AuditHandler 返回记录审核事件的 handler. 无法解析的消息也会被确认，避免阻塞.
func AuditHandler(logger *zerolog.Logger) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		env, err := ParseWatermillMessage[map[string]any](msg)
		if err != nil {
			logger.Warn().Err(err).Str("uuid", msg.UUID).Msg("audit: malformed event")
			return nil
		}

		logger.Info().
			Str("event", env.Header.Topic).
			Str("trace_id", env.Header.TraceID).
			Time("occurred_at", env.Header.OccurredAt).
			Interface("payload", env.Payload).
			Msg("audit")

		return nil
	}
}

package mq

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/yeisme/keepsake/pkg/configs"
)

// DefaultChannelBufferSize 订阅输出通道缓冲.
const DefaultChannelBufferSize = 100

// redisFrame 在 Redis Pub/Sub 上传输的消息帧，保留 UUID 与元数据.
type redisFrame struct {
	UUID     string            `json:"uuid"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Payload  []byte            `json:"payload"`
}

// RedisPublisher Redis Publisher 实现.
type RedisPublisher struct {
	client *redis.Client
}

// RedisSubscriber Redis Subscriber 实现. 每次 Subscribe 建立独立的 PubSub 连接.
type RedisSubscriber struct {
	client  *redis.Client
	logger  watermill.LoggerAdapter
	subs    []*redis.PubSub
	mu      sync.Mutex
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

func init() {
	RegisterFactory(configs.MQTypeRedis, redisFactory)
}

// redisFactory 创建 Redis Publisher & Subscriber.
func redisFactory(
	ctx context.Context,
	cfg *configs.MQConfig,
	logger watermill.LoggerAdapter) (
	message.Publisher, message.Subscriber, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	pub := &RedisPublisher{client: rdb}
	sub := &RedisSubscriber{client: rdb, logger: logger, closeCh: make(chan struct{})}

	return pub, sub, nil
}

// Publish 实现 Publisher 接口.
func (p *RedisPublisher) Publish(topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		data, err := sonic.Marshal(redisFrame{UUID: msg.UUID, Metadata: msg.Metadata, Payload: msg.Payload})
		if err != nil {
			return fmt.Errorf("encode message %s: %w", msg.UUID, err)
		}

		ctx := msg.Context()
		if err := p.client.Publish(ctx, topic, data).Err(); err != nil {
			return fmt.Errorf("publish to %s: %w", topic, err)
		}
	}

	return nil
}

// Close 连接由 Subscriber 统一关闭.
func (p *RedisPublisher) Close() error {
	return nil
}

// Subscribe 实现 Subscriber 接口. 消息需 Ack 后才会投递下一条.
func (s *RedisSubscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("redis subscriber closed")
	}

	ps := s.client.Subscribe(ctx, topic)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	s.subs = append(s.subs, ps)
	out := make(chan *message.Message, DefaultChannelBufferSize)

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer close(out)

		in := ps.Channel()

		for {
			select {
			case <-s.closeCh:
				return
			case <-ctx.Done():
				return
			case raw, ok := <-in:
				if !ok {
					return
				}

				msg := s.decode(raw.Payload)
				if msg == nil {
					continue
				}

				msg.SetContext(ctx)

				if !s.deliver(ctx, out, msg) {
					return
				}
			}
		}
	}()

	return out, nil
}

func (s *RedisSubscriber) decode(raw string) *message.Message {
	var frame redisFrame
	if err := sonic.UnmarshalString(raw, &frame); err != nil {
		s.logger.Error("drop malformed redis frame", err, nil)
		return nil
	}

	if frame.UUID == "" {
		frame.UUID = watermill.NewUUID()
	}

	msg := message.NewMessage(frame.UUID, frame.Payload)
	for k, v := range frame.Metadata {
		msg.Metadata.Set(k, v)
	}

	return msg
}

// deliver 投递并等待 Ack/Nack. Redis Pub/Sub 无重投，Nack 仅记录日志.
func (s *RedisSubscriber) deliver(ctx context.Context, out chan<- *message.Message, msg *message.Message) bool {
	select {
	case out <- msg:
	case <-s.closeCh:
		return false
	case <-ctx.Done():
		return false
	}

	select {
	case <-msg.Acked():
	case <-msg.Nacked():
		s.logger.Info("message nacked, redis pubsub does not redeliver", watermill.LogFields{"uuid": msg.UUID})
	case <-s.closeCh:
		return false
	case <-ctx.Done():
		return false
	}

	return true
}

// Close 实现 Subscriber 接口.
func (s *RedisSubscriber) Close() error {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return nil
	}

	s.closed = true
	close(s.closeCh)

	for _, ps := range s.subs {
		if err := ps.Close(); err != nil {
			s.logger.Error("close redis pubsub", err, nil)
		}
	}
	s.mu.Unlock()

	s.wg.Wait()

	return s.client.Close()
}

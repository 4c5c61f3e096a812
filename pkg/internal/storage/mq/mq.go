// Package mq 基于 Watermill 提供统一的发布/订阅客户端，通过工厂注册表支持多种后端.
//
// 支持的 MQ 类型：
//   - memory（进程内 gochannel，默认）
//   - nats（可选 JetStream）
//   - redis（Pub/Sub）
//
// 使用示例：
//
//	client, err := mq.New(ctx, configs.GetConfig().MQ)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	msg := message.NewMessage(watermill.NewUUID(), []byte("hello"))
//	_ = client.Publish(ctx, "ks.wish.created", msg)
//
//	client.AddConsumer("audit", "ks.upload.approved", func(msg *message.Message) error {
//		return nil
//	})
//	go client.Run(ctx)
package mq

import (
	"context"
	"fmt"
	"sort"
	"sync"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yeisme/keepsake/pkg/configs"
	nlog "github.com/yeisme/keepsake/pkg/log"
)

// Factory 定义创建 Publisher + Subscriber 的工厂函数.
type Factory func(ctx context.Context, cfg *configs.MQConfig, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error)

var factories = map[configs.MQType]Factory{}

// RegisterFactory 注册指定 MQType 的工厂.
func RegisterFactory(t configs.MQType, f Factory) {
	factories[t] = f
}

// GetRegisteredMQTypes 返回已注册的 MQ 类型（已排序）.
func GetRegisteredMQTypes() []configs.MQType {
	types := make([]configs.MQType, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// Client 封装 watermill Publisher、Subscriber 与消费者 Router.
type Client struct {
	kind       configs.MQType
	publisher  message.Publisher
	subscriber message.Subscriber
	router     *message.Router
	logger     watermill.LoggerAdapter

	runOnce sync.Once
}

// Options 控制客户端的可选能力.
type Options struct {
	// Registerer 非空时为 publisher、subscriber 与 router 加上 Prometheus 指标.
	Registerer prometheus.Registerer
}

// New 按配置创建客户端.
func New(ctx context.Context, cfg configs.MQConfig, opts ...Options) (*Client, error) {
	kind := cfg.Type
	if kind == "" {
		kind = configs.MQTypeMemory
	}

	factory, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported mq type: %s", kind)
	}

	logger := NewLoggerAdapter(nlog.Logger())

	pub, sub, err := factory(ctx, &cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init mq (%s): %w", kind, err)
	}

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, fmt.Errorf("create router: %w", err)
	}

	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}

	if opt.Registerer != nil {
		builder := metrics.NewPrometheusMetricsBuilder(opt.Registerer, configs.AppName, "mq")
		builder.AddPrometheusRouterMetrics(router)

		if pub, err = builder.DecoratePublisher(pub); err != nil {
			return nil, fmt.Errorf("decorate publisher with metrics: %w", err)
		}

		if sub, err = builder.DecorateSubscriber(sub); err != nil {
			return nil, fmt.Errorf("decorate subscriber with metrics: %w", err)
		}
	}

	nlog.Logger().Info().Str("type", string(kind)).Msg("mq client initialized")

	return &Client{kind: kind, publisher: pub, subscriber: sub, router: router, logger: logger}, nil
}

// Type 返回后端类型.
func (c *Client) Type() configs.MQType {
	return c.kind
}

// Publisher 返回底层 Publisher.
func (c *Client) Publisher() message.Publisher {
	return c.publisher
}

// Publish 便捷发布.
func (c *Client) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	if c == nil || c.publisher == nil {
		return fmt.Errorf("mq publisher not initialized")
	}

	return c.publisher.Publish(topic, msgs...)
}

// Subscribe 便捷订阅.
func (c *Client) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if c == nil || c.subscriber == nil {
		return nil, fmt.Errorf("mq subscriber not initialized")
	}

	return c.subscriber.Subscribe(ctx, topic)
}

// AddConsumer 在 router 上注册只消费不转发的 handler. 须在 Run 之前调用.
func (c *Client) AddConsumer(name, topic string, handler message.NoPublishHandlerFunc) {
	c.router.AddNoPublisherHandler(name, topic, c.subscriber, handler)
}

// Run 启动 router 并阻塞至 ctx 结束，重复调用无效.
func (c *Client) Run(ctx context.Context) error {
	var err error

	c.runOnce.Do(func() {
		err = c.router.Run(ctx)
	})

	return err
}

// Running 在 router 启动完成后关闭.
func (c *Client) Running() chan struct{} {
	return c.router.Running()
}

// Ping 检查发布通道是否可用.
func (c *Client) Ping(_ context.Context) error {
	if c == nil || c.publisher == nil {
		return fmt.Errorf("mq publisher not initialized")
	}

	return nil
}

// Close 关闭 router、publisher 与 subscriber.
func (c *Client) Close() error {
	var firstErr error

	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if c.router != nil {
		keep(c.router.Close())
	}

	if c.publisher != nil {
		keep(c.publisher.Close())
	}

	// gochannel 的 Publisher 与 Subscriber 是同一对象，Close 可重复调用
	if c.subscriber != nil {
		keep(c.subscriber.Close())
	}

	return firstErr
}

package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/internal/infrastructure/config"
	"github.com/xiebiao/booksapi/pkg/circuitbreaker"
	"github.com/xiebiao/booksapi/pkg/metrics"
	"github.com/xiebiao/booksapi/pkg/mq"
)

// RoutingKeyBookRated 评分事件的routing key
const RoutingKeyBookRated = "book.rated"

const (
	publishTimeout = 2 * time.Second
	// queueSize 待发布事件的缓冲上限,满时丢弃新事件
	queueSize = 256
)

// Notifier 评分成功后的事件通知,失败只记日志
type Notifier interface {
	BookRated(ctx context.Context, evt book.RatedEvent)
}

// Publisher 消息发布(由pkg/mq实现)
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// BrokerNotifier 经熔断器发布到RabbitMQ
// BookRated只入队,由单个worker按顺序发布;连续失败后熔断,之后的事件直接丢弃
type BrokerNotifier struct {
	publisher Publisher
	breaker   *circuitbreaker.CircuitBreaker
	log       *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan ratedJob
	done   chan struct{}
}

type ratedJob struct {
	ctx context.Context
	evt book.RatedEvent
}

// NewBrokerNotifier 创建通知器
func NewBrokerNotifier(publisher Publisher, log *zap.Logger) *BrokerNotifier {
	metrics.InitMetrics()

	breaker := circuitbreaker.NewCircuitBreaker("rabbitmq", circuitbreaker.Config{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
		},
	})

	n := &BrokerNotifier{
		publisher: publisher,
		breaker:   breaker,
		log:       log,
		queue:     make(chan ratedJob, queueSize),
		done:      make(chan struct{}),
	}
	go n.run()
	return n
}

// BookRated 将book.rated事件放入发布队列后立即返回
// 发布使用独立的超时Context,客户端断开不影响发布
func (n *BrokerNotifier) BookRated(ctx context.Context, evt book.RatedEvent) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.log.Debug("通知器已关闭,丢弃评分事件", zap.String("isbn13", evt.ISBN13))
		return
	}

	select {
	case n.queue <- ratedJob{ctx: context.WithoutCancel(ctx), evt: evt}:
	default:
		metrics.IncCounterVec(metrics.MessagesPublishedTotal,
			map[string]string{"routing_key": RoutingKeyBookRated, "result": "dropped"})
		n.log.Warn("发布队列已满,丢弃评分事件",
			zap.String("isbn13", evt.ISBN13),
			zap.Int("star", evt.Star),
		)
	}
}

// Close 停止接收新事件,等待队列中的事件发布完毕
func (n *BrokerNotifier) Close() {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	<-n.done
}

func (n *BrokerNotifier) run() {
	defer close(n.done)
	for job := range n.queue {
		n.publish(job.ctx, job.evt)
	}
}

func (n *BrokerNotifier) publish(ctx context.Context, evt book.RatedEvent) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := n.breaker.Execute(func() error {
		return n.publisher.Publish(ctx, RoutingKeyBookRated, evt)
	})

	labels := map[string]string{"routing_key": RoutingKeyBookRated, "result": "success"}
	cbResult := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		labels["result"] = "rejected"
		cbResult = "rejected"
	case err != nil:
		labels["result"] = "failure"
		cbResult = "failure"
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, labels)
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": n.breaker.Name(), "result": cbResult})

	if err != nil {
		n.log.Warn("评分事件发布失败",
			zap.String("isbn13", evt.ISBN13),
			zap.Int("star", evt.Star),
			zap.Error(err),
		)
	}
}

// NopNotifier mq.enabled为false时使用
type NopNotifier struct{}

func (NopNotifier) BookRated(context.Context, book.RatedEvent) {}

// NewNotifier 按配置创建通知器,返回的cleanup先发布完队列中的事件再关闭Broker连接
func NewNotifier(cfg *config.Config, log *zap.Logger) (Notifier, func(), error) {
	log = log.Named("events")
	if !cfg.MQ.Enabled {
		return NopNotifier{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}

	notifier := NewBrokerNotifier(publisher, log)
	cleanup := func() {
		notifier.Close()
		if err := publisher.Close(); err != nil {
			log.Error("关闭RabbitMQ连接失败", zap.Error(err))
		}
	}
	return notifier, cleanup, nil
}

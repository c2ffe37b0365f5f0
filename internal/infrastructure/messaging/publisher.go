// Package messaging 库存事件发布适配
// 把pkg/mq.Publisher适配为inventory.EventPublisher：
// 经熔断器调用broker，成功后记录发布指标
package messaging

import (
	"context"

	"github.com/xiebiao/bookstore-inventory/internal/application/inventory"
	"github.com/xiebiao/bookstore-inventory/pkg/circuitbreaker"
	"github.com/xiebiao/bookstore-inventory/pkg/metrics"
)

// broker pkg/mq.Publisher的方法子集
type broker interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
	Exchange() string
}

// EventPublisher 库存事件发布者
type EventPublisher struct {
	broker  broker
	breaker *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
}

// NewEventPublisher 创建事件发布者
// breaker为nil时直接调用broker
func NewEventPublisher(b broker, breaker *circuitbreaker.CircuitBreaker, m *metrics.Metrics) *EventPublisher {
	return &EventPublisher{broker: b, breaker: breaker, metrics: m}
}

// Publish 发布事件
// 熔断中返回circuitbreaker.ErrOpenState，事件被丢弃
func (p *EventPublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	publish := func() error {
		return p.broker.Publish(ctx, routingKey, event)
	}

	var err error
	if p.breaker != nil {
		err = p.breaker.Execute(publish)
	} else {
		err = publish()
	}
	if err != nil {
		return err
	}

	p.metrics.ObservePublish(p.broker.Exchange(), routingKey)
	return nil
}

var _ inventory.EventPublisher = (*EventPublisher)(nil)

package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeChannel 记录发布的消息，不连接RabbitMQ
type fakeChannel struct {
	exchange   string
	routingKey string
	msg        amqp.Publishing
	err        error
	closed     bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.exchange, f.routingKey, f.msg = exchange, key, msg
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

type soldEvent struct {
	BookID   int64 `json:"book_id"`
	Quantity int   `json:"quantity"`
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch, exchange: "bookstore.inventory", logger: zap.NewNop()}

	err := p.Publish(context.Background(), "book.sold", soldEvent{BookID: 7, Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, "bookstore.inventory", ch.exchange)
	assert.Equal(t, "book.sold", ch.routingKey)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.False(t, ch.msg.Timestamp.IsZero())

	var got soldEvent
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, soldEvent{BookID: 7, Quantity: 2}, got)
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel/connection is not open")}
	p := &Publisher{channel: ch, exchange: "bookstore.inventory", logger: zap.NewNop()}

	err := p.Publish(context.Background(), "book.sold", soldEvent{BookID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "发布消息失败")
}

func TestPublisher_MarshalError(t *testing.T) {
	p := &Publisher{channel: &fakeChannel{}, exchange: "x", logger: zap.NewNop()}

	err := p.Publish(context.Background(), "book.sold", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "消息序列化失败")
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch, exchange: "x", logger: zap.NewNop()}

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
